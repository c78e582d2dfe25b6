package controllers

import (
	"github.com/spaghettifunk/kamera/camera"
)

// Active returns the controller that should receive input this tick: the
// first enabled one in slice order, or nil when none is enabled. Only one
// camera can be controlled at a time.
//
// The slice order is the documented priority order. Earlier designs
// resolved ties by iterating an unordered component set, which made the
// winner depend on host iteration order; passing an explicit slice here
// makes the priority deterministic and visible at the call site.
func Active(controllers []camera.Controller) camera.Controller {
	for _, c := range controllers {
		if c != nil && c.IsEnabled() {
			return c
		}
	}
	return nil
}
