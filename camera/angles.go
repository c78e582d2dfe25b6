package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/engine/core"
	amath "github.com/spaghettifunk/kamera/engine/math"
)

const (
	// Margin kept between the pitch and the poles. Trigonometric
	// identities for the up vector are unstable closer than this.
	pitchClampMargin float32 = 1e-2
	// Distance from a pole at which AssertNotLookingUp considers the
	// pitch invariant broken.
	pitchAssertMargin float32 = 1e-4

	maxPitch float32 = amath.K_HALF_PI - pitchClampMargin
)

/**
 * @brief A yaw/pitch pair describing a view direction. Yaw is wrapped into
 * (-PI, PI]; pitch is clamped strictly inside (-PI/2, PI/2) so the
 * representation can never reach a gimbal-lock pole. Yaw 0 looks down -Z
 * in a right-handed Y-up world.
 */
type LookAngles struct {
	yaw   float32
	pitch float32
}

// NewLookAngles builds a LookAngles from raw yaw and pitch values,
// applying the usual wrap and clamp.
func NewLookAngles(yaw, pitch float32) LookAngles {
	a := LookAngles{}
	a.SetYaw(yaw)
	a.SetPitch(pitch)
	return a
}

// NewLookAnglesFromVector converts a (possibly non-unit) direction into
// yaw and pitch. Fails with core.ErrZeroLengthVector when the direction
// has no magnitude.
func NewLookAnglesFromVector(direction mgl32.Vec3) (LookAngles, error) {
	length := direction.Len()
	if length < amath.K_FLOAT_EPSILON {
		return LookAngles{}, core.ErrZeroLengthVector
	}
	a := LookAngles{}
	a.SetPitch(amath.Asin(direction.Y() / length))
	a.SetYaw(amath.Atan2(-direction.X(), -direction.Z()))
	return a, nil
}

func (a LookAngles) Yaw() float32 {
	return a.yaw
}

func (a LookAngles) Pitch() float32 {
	return a.pitch
}

// SetYaw wraps the given angle into (-PI, PI]. The wrap is continuous, so
// repeated small increments never produce jumps larger than the increment.
func (a *LookAngles) SetYaw(yaw float32) {
	a.yaw = amath.WrapPi(yaw)
}

// SetPitch clamps the given angle strictly inside (-PI/2, PI/2), leaving
// a fixed margin from the poles. Pushing past the limit saturates.
func (a *LookAngles) SetPitch(pitch float32) {
	a.pitch = amath.Clamp(pitch, -maxPitch, maxPitch)
}

func (a *LookAngles) AddYaw(delta float32) {
	a.SetYaw(a.yaw + delta)
}

func (a *LookAngles) AddPitch(delta float32) {
	a.SetPitch(a.pitch + delta)
}

// UnitVector returns the unit view direction for the current yaw and
// pitch. Exact inverse of NewLookAnglesFromVector for non-polar input.
func (a LookAngles) UnitVector() mgl32.Vec3 {
	cosPitch := amath.Cos(a.pitch)
	return mgl32.Vec3{
		-amath.Sin(a.yaw) * cosPitch,
		amath.Sin(a.pitch),
		-amath.Cos(a.yaw) * cosPitch,
	}
}

// AssertNotLookingUp fails fatally if the pitch has drifted within a tiny
// epsilon of a pole. This indicates an upstream bug (unclamped input), not
// a recoverable runtime condition: SetPitch keeps a much wider margin, so
// a correctly-clamped pipeline can never trip this.
func (a LookAngles) AssertNotLookingUp() {
	if amath.K_HALF_PI-amath.Abs(a.pitch) < pitchAssertMargin {
		core.LogFatal("look angles pitch %f reached the gimbal pole", a.pitch)
	}
}
