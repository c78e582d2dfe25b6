package controllers

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/engine/containers"
	"github.com/spaghettifunk/kamera/engine/core"
)

// Fps is your typical first-person camera controller: mouse look with
// WASD/Space/Shift flight translation, optional cursor auto-hide with a
// toggle key, and a smoothing weight handed to the rig's smoother.
type Fps struct {
	enabled bool

	MouseRotateSensitivity mgl32.Vec2
	TranslateSensitivity   float32
	// AutoHideCursor locks and hides the cursor while the controller is
	// active.
	AutoHideCursor bool

	smoothingWeight float32
	toggleMode      camera.CursorToggleMode
	events          *containers.RingQueue[ControlEvent]
}

// NewFps creates an enabled FPS controller with the stock tuning.
func NewFps() *Fps {
	return &Fps{
		enabled:                true,
		MouseRotateSensitivity: mgl32.Vec2{0.2, 0.2},
		TranslateSensitivity:   2.0,
		AutoHideCursor:         true,
		smoothingWeight:        0.9,
		toggleMode:             camera.CursorToggleTrigger,
		events:                 containers.NewRingQueue[ControlEvent](controlQueueSize),
	}
}

func (f *Fps) IsEnabled() bool {
	return f.enabled
}

func (f *Fps) SetEnabled(enabled bool) {
	f.enabled = enabled
}

func (f *Fps) SmoothingWeight() float32 {
	return f.smoothingWeight
}

func (f *Fps) SetCursorToggleMode(mode camera.CursorToggleMode) {
	f.toggleMode = mode
}

func (f *Fps) CursorToggleMode() camera.CursorToggleMode {
	return f.toggleMode
}

func (f *Fps) ApplyTuning(tuning camera.Tuning) {
	f.smoothingWeight = tuning.SmoothingWeight
	f.MouseRotateSensitivity = mgl32.Vec2{
		tuning.MouseRotateSensitivity,
		tuning.MouseRotateSensitivity,
	}
	f.TranslateSensitivity = tuning.TranslateSensitivity
}

// UpdateCursor runs the toggle-key state machine against the rig's cursor
// state. Trigger mode releases the cursor for as long as Alt is held;
// Flip mode toggles the grab on every Alt press. Re-grabbing schedules a
// one-shot recenter so the next motion delta is clean.
func (f *Fps) UpdateCursor(cursor *camera.CursorState) {
	if !f.AutoHideCursor {
		return
	}

	pressed := core.InputIsKeyJustPressed(core.KEY_LALT) || core.InputIsKeyJustPressed(core.KEY_RALT)
	released := core.InputIsKeyJustReleased(core.KEY_LALT) || core.InputIsKeyJustReleased(core.KEY_RALT)

	switch f.toggleMode {
	case camera.CursorToggleTrigger:
		if pressed {
			cursor.Release()
		} else if released {
			cursor.Grab()
		}
	case camera.CursorToggleFlip:
		if pressed {
			if cursor.Grabbed {
				cursor.Release()
			} else {
				cursor.Grab()
			}
		}
	}
}

// InputMap translates the current input snapshot into control events.
// Mouse motion only rotates while the cursor is grabbed.
func (f *Fps) InputMap(cursor *camera.CursorState) {
	if cursor.Grabbed {
		dx, dy := core.InputGetMouseDelta()
		if dx != 0 || dy != 0 {
			f.push(ControlEvent{
				Kind: ControlRotate,
				Delta2: mgl32.Vec2{
					f.MouseRotateSensitivity.X() * dx,
					f.MouseRotateSensitivity.Y() * dy,
				},
			})
		}
	}

	for _, kd := range [...]struct {
		key core.KeyCode
		dir mgl32.Vec3
	}{
		{core.KEY_W, mgl32.Vec3{0, 0, -1}},
		{core.KEY_S, mgl32.Vec3{0, 0, 1}},
		{core.KEY_A, mgl32.Vec3{-1, 0, 0}},
		{core.KEY_D, mgl32.Vec3{1, 0, 0}},
		{core.KEY_SPACE, mgl32.Vec3{0, 1, 0}},
		{core.KEY_LSHIFT, mgl32.Vec3{0, -1, 0}},
	} {
		if core.InputIsKeyDown(kd.key) {
			f.push(ControlEvent{
				Kind:   ControlTranslateEye,
				Delta3: kd.dir.Mul(f.TranslateSensitivity),
			})
		}
	}
}

// ApplyControl drains the queued control events into the raw look
// transform. Rotation mutates yaw and pitch through LookAngles so the
// pitch saturates before the poles; translation moves the eye along the
// yaw-rotated frame axes; finally the target is re-derived from the eye,
// the preserved radius and the view direction.
func (f *Fps) ApplyControl(transform *camera.LookTransform, dtSeconds float32) {
	lookVector, err := transform.LookDirection()
	if err != nil {
		core.LogWarn("fps controller: %s, skipping control tick", err)
		f.drain()
		return
	}
	angles, err := camera.NewLookAnglesFromVector(lookVector)
	if err != nil {
		core.LogWarn("fps controller: %s, skipping control tick", err)
		f.drain()
		return
	}

	yawRot := mgl32.QuatRotate(angles.Yaw(), mgl32.Vec3{0, 1, 0})
	rotX := yawRot.Rotate(mgl32.Vec3{1, 0, 0})
	rotY := yawRot.Rotate(mgl32.Vec3{0, 1, 0})
	rotZ := yawRot.Rotate(mgl32.Vec3{0, 0, 1})

	for {
		event, err := f.events.Dequeue()
		if err != nil {
			break
		}
		switch event.Kind {
		case ControlRotate:
			// Rotates with pitch and yaw.
			angles.AddYaw(dtSeconds * -event.Delta2.X())
			angles.AddPitch(dtSeconds * -event.Delta2.Y())
		case ControlTranslateEye:
			// Translates up/down (Y), left/right (X) and forward/back (Z).
			transform.Eye = transform.Eye.
				Add(rotX.Mul(dtSeconds * event.Delta3.X())).
				Add(rotY.Mul(dtSeconds * event.Delta3.Y())).
				Add(rotZ.Mul(dtSeconds * event.Delta3.Z()))
		}
	}

	angles.AssertNotLookingUp()

	transform.Target = transform.Eye.Add(angles.UnitVector().Mul(transform.Radius()))
}

func (f *Fps) push(event ControlEvent) {
	if err := f.events.Enqueue(event); err != nil {
		core.LogWarn("fps controller: control queue full, dropping event")
	}
}

func (f *Fps) drain() {
	for {
		if _, err := f.events.Dequeue(); err != nil {
			return
		}
	}
}
