package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	amath "github.com/spaghettifunk/kamera/engine/math"
)

/**
 * @brief An exponential moving average filter over a look transform
 * stream. Each Update blends the previously emitted pose toward the new
 * raw pose; the blend factor is derived from the smoothing weight and the
 * frame's elapsed time so settling time is frame-rate invariant.
 */
type Smoother struct {
	weight float32
	lag    *LookTransform
}

// The smoothing weight is the fraction of the remaining distance kept
// after one reference frame. Raising it to dt/referenceFrameSeconds
// makes the settling time independent of the actual tick rate.
const referenceFrameSeconds float32 = 1.0 / 60.0

// NewSmoother creates a smoother with the given default weight. The
// weight is clamped into [0, 1): 0 disables smoothing, values approaching
// 1 converge ever more slowly.
func NewSmoother(weight float32) *Smoother {
	return &Smoother{
		weight: clampWeight(weight),
	}
}

func clampWeight(w float32) float32 {
	if !amath.IsFinite(w) {
		return 0
	}
	return amath.Clamp(w, 0, 1.0-amath.K_FLOAT_EPSILON)
}

// Weight returns the stored default smoothing weight.
func (s *Smoother) Weight() float32 {
	return s.weight
}

// SetWeight replaces the stored default smoothing weight.
func (s *Smoother) SetWeight(weight float32) {
	s.weight = clampWeight(weight)
}

// Reset forgets the lag pose. The next Update emits its raw input
// unchanged. Use when a rig teleports and should not glide to the new
// placement.
func (s *Smoother) Reset() {
	s.lag = nil
}

// Update feeds one raw pose through the filter and returns the smoothed
// pose, which also becomes the new internal lag pose.
//
// The first call emits rawTransform exactly, so there is no smoothing
// transient on startup. Subsequent calls interpolate eye, target and up
// component-wise from the lag pose toward the raw pose by
// t = 1 - w^dtSeconds, where w is weightOverride if supplied, else the
// stored default. The weight is defined per 60Hz reference frame, so a
// rig smoothed at any tick rate settles in the same wall-clock time. The
// up vector is interpolated like the others and not renormalized;
// view-matrix construction orthonormalizes it.
//
// dtSeconds <= 0 is a caller contract violation and is treated as a
// no-op: the previous lag pose is returned unmoved and no state changes.
// Non-finite dt, weight or pose components are guarded the same way so
// NaN can never enter the persistent lag pose.
func (s *Smoother) Update(weightOverride *float32, rawTransform LookTransform, dtSeconds float32) LookTransform {
	if !amath.IsFinite(dtSeconds) || dtSeconds <= 0 || !rawTransform.IsFinite() {
		if s.lag != nil {
			return *s.lag
		}
		return rawTransform
	}

	w := s.weight
	if weightOverride != nil {
		if !amath.IsFinite(*weightOverride) {
			if s.lag != nil {
				return *s.lag
			}
			return rawTransform
		}
		w = amath.Clamp(*weightOverride, 0, 1.0-amath.K_FLOAT_EPSILON)
	}

	if s.lag == nil {
		lag := rawTransform
		s.lag = &lag
		return rawTransform
	}

	t := 1.0 - amath.Pow(w, dtSeconds/referenceFrameSeconds)
	var smoothed LookTransform
	if t >= 1.0 {
		// Smoothing fully disabled; emit the raw pose bit-exact.
		smoothed = rawTransform
	} else {
		smoothed = LookTransform{
			Eye:    lerpVec3(s.lag.Eye, rawTransform.Eye, t),
			Target: lerpVec3(s.lag.Target, rawTransform.Target, t),
			Up:     lerpVec3(s.lag.Up, rawTransform.Up, t),
		}
	}
	*s.lag = smoothed
	return smoothed
}

func lerpVec3(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}
