package camera

// Tuning carries the hot-reloadable knobs of a controller. Fired through
// the event system when the application config changes on disk.
type Tuning struct {
	SmoothingWeight        float32
	MouseRotateSensitivity float32
	TranslateSensitivity   float32
}

// Controller is the contract between a camera rig and the thing driving
// it. Implementations live in camera/controllers; the rig invokes each
// method at most once per tick, in the order they are declared here.
type Controller interface {
	IsEnabled() bool
	SetEnabled(enabled bool)

	// UpdateCursor runs the toggle-key state machine against the rig's
	// cursor state.
	UpdateCursor(cursor *CursorState)
	// InputMap translates the current input snapshot into queued control
	// events. Rotation input must be ignored while the cursor is not
	// grabbed.
	InputMap(cursor *CursorState)
	// ApplyControl drains the queued control events into the raw look
	// transform, scaled by the frame's elapsed time.
	ApplyControl(transform *LookTransform, dtSeconds float32)

	// SmoothingWeight is handed to the rig's smoother every tick.
	SmoothingWeight() float32
	SetCursorToggleMode(mode CursorToggleMode)
	ApplyTuning(tuning Tuning)
}
