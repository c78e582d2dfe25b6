// Package controllers contains the camera controllers that drive a rig's
// raw look transform from input: a first-person controller and an orbit
// controller. Controllers communicate with their own apply step through a
// bounded queue of control events, mirroring the input-map/control split
// of the engine's update order.
package controllers

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ControlEventKind uint8

const (
	// Rotate the view by a yaw/pitch delta (pixels times sensitivity).
	ControlRotate ControlEventKind = iota
	// Translate the eye along the yaw-rotated frame axes.
	ControlTranslateEye
	// Translate the look-at target in the view plane.
	ControlTranslateTarget
	// Scale the orbit radius by a factor.
	ControlZoom
)

// ControlEvent is one unit of camera control produced by an input map and
// consumed by ApplyControl within the same tick.
type ControlEvent struct {
	Kind   ControlEventKind
	Delta2 mgl32.Vec2
	Delta3 mgl32.Vec3
	Scalar float32
}

// controlQueueSize bounds the number of control events a single tick can
// batch. Input maps emit at most a handful per tick; overflow is dropped
// with a warning.
const controlQueueSize = 32
