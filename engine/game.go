package engine

import (
	"github.com/spaghettifunk/kamera/camera"
)

// Game is the application half of the engine contract: configuration,
// opaque state and the frame callbacks the engine invokes.
type Game struct {
	ApplicationConfig *ApplicationConfig
	// CameraSystem is populated by the engine before FnInitialize runs.
	CameraSystem *camera.System
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
