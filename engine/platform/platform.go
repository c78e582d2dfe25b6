package platform

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/kamera/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the application window and feeds its input callbacks into
// the core input subsystem. It is also the only place that touches OS
// cursor state; the camera system decides, the platform applies.
type Platform struct {
	Window *glfw.Window

	width  uint32
	height uint32

	// Last observed cursor position, used to derive raw motion deltas.
	lastCursorX   float64
	lastCursorY   float64
	cursorTracked bool
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window
	p.width = width
	p.height = height

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))

	// Raw motion avoids OS cursor acceleration while the cursor is
	// disabled, which camera rotation wants.
	if glfw.RawMouseMotionSupported() {
		p.Window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. Returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// ApplyCursor reconciles the window's cursor input mode with the given
// grab/visibility decision.
func (p *Platform) ApplyCursor(grabbed bool, visible bool) {
	switch {
	case grabbed:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case !visible:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	default:
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// CenterCursor warps the cursor to the middle of the window without
// producing a motion delta.
func (p *Platform) CenterCursor() {
	cx := float64(p.width) / 2.0
	cy := float64(p.height) / 2.0
	p.Window.SetCursorPos(cx, cy)
	p.lastCursorX = cx
	p.lastCursorY = cy
	p.cursorTracked = true
}

// Sleep gives time back to the OS.
func (p *Platform) Sleep(ms float64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// GetAbsoluteTime returns seconds since glfw initialization.
func GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := translateKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		core.InputProcessKey(code, true)
	case glfw.Release:
		core.InputProcessKey(code, false)
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	core.InputProcessButton(b, action == glfw.Press)
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if p.cursorTracked {
		core.InputProcessMouseDelta(float32(xpos-p.lastCursorX), float32(ypos-p.lastCursorY))
	}
	p.lastCursorX = xpos
	p.lastCursorY = ypos
	p.cursorTracked = true

	if xpos >= 0 && ypos >= 0 {
		core.InputProcessMouseMove(uint16(xpos), uint16(ypos))
	}
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	core.InputProcessMouseWheel(float32(yoff))
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.width = uint32(width)
	p.height = uint32(height)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}

func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KEY_A + core.KeyCode(key-glfw.KeyA), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return core.KEY_NUMPAD0 + core.KeyCode(key-glfw.Key0), true
	}
	switch key {
	case glfw.KeySpace:
		return core.KEY_SPACE, true
	case glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case glfw.KeyEnter:
		return core.KEY_ENTER, true
	case glfw.KeyTab:
		return core.KEY_TAB, true
	case glfw.KeyBackspace:
		return core.KEY_BACKSPACE, true
	case glfw.KeyInsert:
		return core.KEY_INSERT, true
	case glfw.KeyDelete:
		return core.KEY_DELETE, true
	case glfw.KeyRight:
		return core.KEY_RIGHT, true
	case glfw.KeyLeft:
		return core.KEY_LEFT, true
	case glfw.KeyDown:
		return core.KEY_DOWN, true
	case glfw.KeyUp:
		return core.KEY_UP, true
	case glfw.KeyHome:
		return core.KEY_HOME, true
	case glfw.KeyEnd:
		return core.KEY_END, true
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT, true
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT, true
	case glfw.KeyLeftControl:
		return core.KEY_LCONTROL, true
	case glfw.KeyRightControl:
		return core.KEY_RCONTROL, true
	case glfw.KeyLeftAlt:
		return core.KEY_LALT, true
	case glfw.KeyRightAlt:
		return core.KEY_RALT, true
	}
	return 0, false
}
