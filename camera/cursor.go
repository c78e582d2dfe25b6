package camera

// CursorToggleMode selects how a controller reacts to the cursor toggle
// key (Alt) while the camera owns the cursor.
type CursorToggleMode uint8

const (
	// Release the cursor while the toggle key is held, grab it again on
	// release.
	CursorToggleTrigger CursorToggleMode = iota
	// Flip the grab state on every toggle key press.
	CursorToggleFlip
)

// CursorState is the explicit cursor-lock state owned by a camera rig.
// Controllers mutate it during their update and the platform layer applies
// it to the window once per tick; nothing else touches windowing state.
type CursorState struct {
	// Grabbed means the cursor is locked to the window and hidden, with
	// raw relative motion feeding camera rotation.
	Grabbed bool
	// Visible mirrors the OS cursor visibility.
	Visible bool
	// ResetPending requests a one-shot recenter of the cursor on the
	// tick after grabbing, so the first grabbed motion delta is clean.
	ResetPending bool
}

// Grab locks and hides the cursor and schedules a recenter.
func (c *CursorState) Grab() {
	c.Grabbed = true
	c.Visible = false
	c.ResetPending = true
}

// Release unlocks and shows the cursor.
func (c *CursorState) Release() {
	c.Grabbed = false
	c.Visible = true
	c.ResetPending = false
}

// CursorModeEvent is the payload for EVENT_CODE_CURSOR_MODE_CHANGED.
// RigName selects a specific rig; empty targets whichever rig currently
// has an enabled controller.
type CursorModeEvent struct {
	Mode    CursorToggleMode
	RigName string
}
