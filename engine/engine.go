package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/engine/core"
	"github.com/spaghettifunk/kamera/engine/platform"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	// Written from event handlers on the ProcessEvents goroutine and read
	// by the run loop, hence atomic.
	isRunning     atomic.Bool
	isSuspended   atomic.Bool
	platform      *platform.Platform
	cameraSystem  *camera.System
	configWatcher *ConfigWatcher
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}

	cs, err := camera.NewSystem(&camera.SystemConfig{
		MaxRigCount:            16,
		DefaultSmoothingWeight: g.ApplicationConfig.CameraTuning.SmoothingWeight,
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.CameraSystem = cs

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		cameraSystem: cs,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}
	e.isRunning.Store(true)
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.LogSetLevel(e.gameInstance.ApplicationConfig.LogLevel)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)
	e.cameraSystem.RegisterEvents()

	if err := e.platform.Startup(e.gameInstance.ApplicationConfig.Name,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.gameInstance.ApplicationConfig.StartWidth,
		e.gameInstance.ApplicationConfig.StartHeight); err != nil {
		return err
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// watch the config file for live camera tuning changes, if one was
	// used to begin with
	if path := e.gameInstance.ApplicationConfig.Path; path != "" {
		watcher, err := WatchApplicationConfig(path)
		if err != nil {
			core.LogWarn("config watching disabled: %s", err)
		} else {
			e.configWatcher = watcher
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	// start goroutine to process all the events around the engine
	go core.ProcessEvents()

	var targetFrameSeconds float64 = 1.0 / 60.0

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
		}

		if !e.isSuspended.Load() {
			// Update clock and get delta time.
			e.clock.Update()

			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime
			frameStartTime := platform.GetAbsoluteTime()

			// Run the camera pipeline: cursor state machine, input
			// mapping, control application and smoothing.
			e.cameraSystem.Update(float32(delta))
			e.applyCursorState()

			if e.gameInstance.FnUpdate != nil {
				if err := e.gameInstance.FnUpdate(delta); err != nil {
					core.LogError("Game update failed, shutting down.")
					e.isRunning.Store(false)
					break
				}
			}

			if e.gameInstance.FnRender != nil {
				if err := e.gameInstance.FnRender(delta); err != nil {
					core.LogError("Game render failed, shutting down.")
					e.isRunning.Store(false)
					break
				}
			}

			// Figure out how long the frame took.
			frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
			core.MetricsUpdate(frameElapsedTime)
			remainingSeconds := targetFrameSeconds - frameElapsedTime
			if remainingSeconds > 0 {
				// Give the leftover frame time back to the OS.
				e.platform.Sleep(remainingSeconds*1000 - 1)
			}

			// NOTE: Input update/state copying should always be handled
			// after any input should be recorded; I.E. before this line.
			// As a safety, input is the last thing to be updated before
			// this frame ends.
			core.InputUpdate(delta)

			e.lastTime = currentTime
		}
	}

	return e.Shutdown()
}

// applyCursorState pushes the active rig's cursor decision to the window.
// The one-shot recenter runs here so it lands after control processing
// and before the next frame's input.
func (e *Engine) applyCursorState() {
	rig := e.cameraSystem.ActiveRig()
	if rig == nil {
		return
	}
	e.platform.ApplyCursor(rig.Cursor.Grabbed, rig.Cursor.Visible)
	if rig.Cursor.ResetPending {
		e.platform.CenterCursor()
		rig.Cursor.ResetPending = false
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if e.configWatcher != nil {
		if err := e.configWatcher.Close(); err != nil {
			core.LogError("config watcher close failed: %s", err)
		}
	}
	if err := e.cameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event payload associated with event type `%d`", context.Type)
		return
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be
		// other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event payload associated with event type `%d`", context.Type)
		return
	}

	e.width = se.WindowWidth
	e.height = se.WindowHeight

	// A zero dimension means the window is minimized; suspend updates
	// until it comes back.
	if se.WindowWidth == 0 || se.WindowHeight == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended.Store(true)
		return
	}
	if e.isSuspended.Swap(false) {
		core.LogInfo("Window restored, resuming application.")
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(se.WindowWidth, se.WindowHeight); err != nil {
			core.LogError("game resize handler failed: %s", err)
		}
	}
}
