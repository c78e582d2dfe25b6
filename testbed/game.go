package testbed

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/camera/controllers"
	"github.com/spaghettifunk/kamera/engine"
	"github.com/spaghettifunk/kamera/engine/core"
)

const configPath = "config.toml"

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	worldRig      *camera.Rig
	inspectionRig *camera.Rig
	fps           *controllers.Fps
	orbit         *controllers.Orbit

	// Seconds left until the next camera pose log line.
	logCountdown float64
}

func NewTestGame() (*TestGame, error) {
	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			core.LogWarn("falling back to default config: %s", err)
		}
		config = engine.DefaultApplicationConfig()
	}
	config.Name = "Kamera Testbed"

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.CameraSystem == nil {
		return fmt.Errorf("the engine is not yet initialized with the camera system")
	}

	state := g.State.(*gameState)

	// First-person rig on the default camera, placed like the classic
	// look-transform example scene.
	state.worldRig = g.CameraSystem.GetDefault()
	state.worldRig.Teleport(camera.NewLookTransform(
		mgl32.Vec3{-2.0, 2.5, 5.0},
		mgl32.Vec3{0.0, 0.5, 0.0},
		mgl32.Vec3{0.0, 1.0, 0.0},
	))
	state.fps = controllers.NewFps()
	state.fps.ApplyTuning(g.ApplicationConfig.CameraTuning)
	state.worldRig.Bind(state.fps)

	// Secondary orbit rig for inspecting the scene; starts disabled and
	// is toggled with Tab.
	rig, err := g.CameraSystem.Acquire("inspection")
	if err != nil {
		return err
	}
	state.inspectionRig = rig
	state.inspectionRig.Teleport(camera.NewLookTransform(
		mgl32.Vec3{6.0, 4.0, 6.0},
		mgl32.Vec3{0.0, 0.5, 0.0},
		mgl32.Vec3{0.0, 1.0, 0.0},
	))
	state.orbit = controllers.NewOrbit()
	state.orbit.SetEnabled(false)
	state.inspectionRig.Bind(state.orbit)

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// Tab swaps between the first-person and orbit rigs.
	if core.InputIsKeyJustPressed(core.KEY_TAB) {
		fpsActive := state.fps.IsEnabled()
		state.fps.SetEnabled(!fpsActive)
		state.orbit.SetEnabled(fpsActive)
		core.LogInfo("switched active controller (fps=%t)", !fpsActive)
	}

	// C flips the cursor toggle mode of the active controller at
	// runtime, going through the event bus like an external tool would.
	if core.InputIsKeyJustPressed(core.KEY_C) {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_CURSOR_MODE_CHANGED,
			Data: &camera.CursorModeEvent{
				Mode: camera.CursorToggleFlip,
			},
		})
	}

	state.logCountdown -= deltaTime
	if state.logCountdown <= 0 {
		state.logCountdown = 2.0
		pose := state.worldRig.Smoothed()
		core.LogDebug("Camera Eye: [%.3f, %.3f, %.3f] Target: [%.3f, %.3f, %.3f] | %.1f fps",
			pose.Eye.X(), pose.Eye.Y(), pose.Eye.Z(),
			pose.Target.X(), pose.Target.Y(), pose.Target.Z(),
			core.MetricsFPS())
	}

	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	// No renderer here: the smoothed view matrix is where a backend
	// would pick up.
	state := g.State.(*gameState)
	_ = state.worldRig.Smoothed().ViewMatrix()
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	if g.CameraSystem != nil {
		g.CameraSystem.Release("inspection")
	}
	return nil
}
