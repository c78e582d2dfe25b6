// Package camera provides the look-transform pose type, a yaw/pitch angle
// representation free of gimbal-lock instability, and an exponential
// smoothing filter that turns a raw per-tick pose stream into a visually
// smooth one. These are plain value types driven once per tick by the
// engine's camera system.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/engine/core"
	amath "github.com/spaghettifunk/kamera/engine/math"
)

/**
 * @brief An eye position, look-at target and up vector triple defining a
 * camera's placement and orientation. Eye and Target must never coincide;
 * Up is not required to be unit-length or orthogonal to the view direction,
 * callers normalize as needed.
 */
type LookTransform struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

func NewLookTransform(eye, target, up mgl32.Vec3) LookTransform {
	return LookTransform{
		Eye:    eye,
		Target: target,
		Up:     up,
	}
}

// Radius returns the distance from the eye to the target, clamped away
// from zero so it can always be used as a multiplier.
func (t LookTransform) Radius() float32 {
	r := t.Target.Sub(t.Eye).Len()
	if r < amath.K_FLOAT_EPSILON {
		return amath.K_FLOAT_EPSILON
	}
	return r
}

// LookDirection returns the unit vector from the eye toward the target.
// Fails with core.ErrDegenerateLookDirection when the two coincide.
func (t LookTransform) LookDirection() (mgl32.Vec3, error) {
	dir := t.Target.Sub(t.Eye)
	if dir.Len() < amath.K_FLOAT_EPSILON {
		return mgl32.Vec3{}, core.ErrDegenerateLookDirection
	}
	return dir.Normalize(), nil
}

// IsFinite reports whether every component of the pose is a finite number.
func (t LookTransform) IsFinite() bool {
	for _, v := range [3]mgl32.Vec3{t.Eye, t.Target, t.Up} {
		for i := 0; i < 3; i++ {
			if !amath.IsFinite(v[i]) {
				return false
			}
		}
	}
	return true
}

// ViewMatrix builds the right-handed view matrix for this pose. The up
// vector is orthonormalized internally.
func (t LookTransform) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(t.Eye, t.Target, t.Up)
}
