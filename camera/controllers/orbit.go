package controllers

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/engine/containers"
	"github.com/spaghettifunk/kamera/engine/core"
	amath "github.com/spaghettifunk/kamera/engine/math"
)

const (
	orbitMinRadius float32 = 0.001
	orbitMaxRadius float32 = 1000000.0
)

// Orbit is a third-person controller that swings the eye around a fixed
// target: right-drag rotates, middle-drag pans the target in the view
// plane, and the wheel zooms by scaling the orbit radius.
type Orbit struct {
	enabled bool

	MouseRotateSensitivity    mgl32.Vec2
	MouseTranslateSensitivity mgl32.Vec2
	MouseWheelZoomSensitivity float32
	// PixelsPerLine converts line-based scroll input into the same scale
	// as pixel-based scroll input.
	PixelsPerLine float32

	smoothingWeight float32
	toggleMode      camera.CursorToggleMode
	events          *containers.RingQueue[ControlEvent]
}

// NewOrbit creates an enabled orbit controller with the stock tuning.
func NewOrbit() *Orbit {
	return &Orbit{
		enabled:                   true,
		MouseRotateSensitivity:    mgl32.Vec2{0.08, 0.08},
		MouseTranslateSensitivity: mgl32.Vec2{0.1, 0.1},
		MouseWheelZoomSensitivity: 0.2,
		PixelsPerLine:             53.0,
		smoothingWeight:           0.8,
		toggleMode:                camera.CursorToggleTrigger,
		events:                    containers.NewRingQueue[ControlEvent](controlQueueSize),
	}
}

func (o *Orbit) IsEnabled() bool {
	return o.enabled
}

func (o *Orbit) SetEnabled(enabled bool) {
	o.enabled = enabled
}

func (o *Orbit) SmoothingWeight() float32 {
	return o.smoothingWeight
}

func (o *Orbit) SetCursorToggleMode(mode camera.CursorToggleMode) {
	o.toggleMode = mode
}

func (o *Orbit) ApplyTuning(tuning camera.Tuning) {
	o.smoothingWeight = tuning.SmoothingWeight
	o.MouseRotateSensitivity = mgl32.Vec2{
		tuning.MouseRotateSensitivity,
		tuning.MouseRotateSensitivity,
	}
	o.MouseTranslateSensitivity = mgl32.Vec2{
		tuning.TranslateSensitivity,
		tuning.TranslateSensitivity,
	}
}

// UpdateCursor is a no-op for the orbit controller: it drags with mouse
// buttons instead of owning the cursor.
func (o *Orbit) UpdateCursor(cursor *camera.CursorState) {
	if cursor.Grabbed {
		cursor.Release()
	}
}

// InputMap translates the current input snapshot into control events:
// right-drag rotates, middle-drag pans the target, wheel zooms.
func (o *Orbit) InputMap(cursor *camera.CursorState) {
	dx, dy := core.InputGetMouseDelta()

	if core.InputIsButtonDown(core.BUTTON_RIGHT) && (dx != 0 || dy != 0) {
		o.push(ControlEvent{
			Kind: ControlRotate,
			Delta2: mgl32.Vec2{
				o.MouseRotateSensitivity.X() * dx,
				o.MouseRotateSensitivity.Y() * dy,
			},
		})
	}

	if core.InputIsButtonDown(core.BUTTON_MIDDLE) && (dx != 0 || dy != 0) {
		o.push(ControlEvent{
			Kind: ControlTranslateTarget,
			Delta3: mgl32.Vec3{
				o.MouseTranslateSensitivity.X() * dx,
				o.MouseTranslateSensitivity.Y() * dy,
				0,
			},
		})
	}

	if wheel := core.InputGetWheelDelta(); wheel != 0 {
		scalar := 1.0 - wheel*o.MouseWheelZoomSensitivity/o.PixelsPerLine
		o.push(ControlEvent{
			Kind:   ControlZoom,
			Scalar: amath.Clamp(scalar, 0.1, 10.0),
		})
	}
}

// ApplyControl drains the queued control events. The target stays put
// under rotation and zoom; the eye is re-derived from the target, the
// scaled radius and the orbit angles.
func (o *Orbit) ApplyControl(transform *camera.LookTransform, dtSeconds float32) {
	lookVector, err := transform.LookDirection()
	if err != nil {
		core.LogWarn("orbit controller: %s, skipping control tick", err)
		o.drain()
		return
	}
	// Orbit angles describe the eye as seen from the target, hence the
	// reversed direction.
	angles, err := camera.NewLookAnglesFromVector(lookVector.Mul(-1))
	if err != nil {
		core.LogWarn("orbit controller: %s, skipping control tick", err)
		o.drain()
		return
	}

	yawRot := mgl32.QuatRotate(angles.Yaw(), mgl32.Vec3{0, 1, 0})
	rotX := yawRot.Rotate(mgl32.Vec3{1, 0, 0})
	rotY := yawRot.Rotate(mgl32.Vec3{0, 1, 0})

	radiusScalar := float32(1.0)
	for {
		event, err := o.events.Dequeue()
		if err != nil {
			break
		}
		switch event.Kind {
		case ControlRotate:
			angles.AddYaw(dtSeconds * -event.Delta2.X())
			angles.AddPitch(dtSeconds * event.Delta2.Y())
		case ControlTranslateTarget:
			transform.Target = transform.Target.
				Add(rotX.Mul(dtSeconds * event.Delta3.X())).
				Add(rotY.Mul(dtSeconds * event.Delta3.Y()))
		case ControlZoom:
			radiusScalar *= event.Scalar
		}
	}

	angles.AssertNotLookingUp()

	newRadius := amath.Clamp(radiusScalar*transform.Radius(), orbitMinRadius, orbitMaxRadius)
	transform.Eye = transform.Target.Add(angles.UnitVector().Mul(newRadius))
}

func (o *Orbit) push(event ControlEvent) {
	if err := o.events.Enqueue(event); err != nil {
		core.LogWarn("orbit controller: control queue full, dropping event")
	}
}

func (o *Orbit) drain() {
	for {
		if _, err := o.events.Dequeue(); err != nil {
			return
		}
	}
}
