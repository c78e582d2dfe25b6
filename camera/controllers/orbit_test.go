package controllers

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/engine/core"
)

func orbitTransform() camera.LookTransform {
	return camera.NewLookTransform(
		mgl32.Vec3{0, 0, 5},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
}

func TestOrbitWheelZoomScalesRadius(t *testing.T) {
	setupInput(t)
	core.InputProcessMouseWheel(1)

	o := NewOrbit()
	transform := orbitTransform()
	cursor := &camera.CursorState{Visible: true}

	o.InputMap(cursor)
	o.ApplyControl(&transform, 1.0/60.0)

	wantRadius := 5 * (1 - o.MouseWheelZoomSensitivity/o.PixelsPerLine)
	assertVec3(t, "target", transform.Target, mgl32.Vec3{0, 0, 0}, 1e-6)
	assertVec3(t, "eye", transform.Eye, mgl32.Vec3{0, 0, wantRadius}, 1e-4)
}

func TestOrbitRotateKeepsTargetAndRadius(t *testing.T) {
	setupInput(t)
	core.InputProcessButton(core.BUTTON_RIGHT, true)
	core.InputProcessMouseDelta(10, 4)

	o := NewOrbit()
	transform := orbitTransform()
	cursor := &camera.CursorState{Visible: true}

	o.InputMap(cursor)
	o.ApplyControl(&transform, 0.1)

	assertVec3(t, "target", transform.Target, mgl32.Vec3{0, 0, 0}, 1e-6)
	radius := transform.Eye.Sub(transform.Target).Len()
	if diff := radius - 5; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("radius after rotate = %f, want 5", radius)
	}
	if transform.Eye == (mgl32.Vec3{0, 0, 5}) {
		t.Fatal("eye did not move under rotation")
	}
}

func TestOrbitMiddleDragPansTarget(t *testing.T) {
	setupInput(t)
	core.InputProcessButton(core.BUTTON_MIDDLE, true)
	core.InputProcessMouseDelta(10, 0)

	o := NewOrbit()
	transform := orbitTransform()
	cursor := &camera.CursorState{Visible: true}

	o.InputMap(cursor)
	o.ApplyControl(&transform, 1.0)

	// The eye sits behind the target on +Z, so the yaw frame's X axis
	// points toward world -X.
	assertVec3(t, "target", transform.Target, mgl32.Vec3{-1, 0, 0}, 1e-4)
}

func TestOrbitZoomClampsRadius(t *testing.T) {
	tests := []struct {
		name   string
		scalar float32
		want   float32
	}{
		{"minimum", 0.1, orbitMinRadius},
		{"maximum", 10, orbitMaxRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbit()
			for i := 0; i < 10; i++ {
				if err := o.events.Enqueue(ControlEvent{Kind: ControlZoom, Scalar: tt.scalar}); err != nil {
					t.Fatalf("Enqueue: %v", err)
				}
			}

			transform := orbitTransform()
			o.ApplyControl(&transform, 1.0/60.0)

			radius := transform.Eye.Sub(transform.Target).Len()
			if diff := radius - tt.want; diff > tt.want*1e-4 || diff < -tt.want*1e-4 {
				t.Fatalf("radius = %g, want %g", radius, tt.want)
			}
		})
	}
}

func TestOrbitReleasesGrabbedCursor(t *testing.T) {
	o := NewOrbit()
	cursor := &camera.CursorState{}
	cursor.Grab()

	o.UpdateCursor(cursor)
	if cursor.Grabbed || !cursor.Visible {
		t.Fatalf("cursor = %+v, want released", cursor)
	}
}

func TestOrbitApplyTuning(t *testing.T) {
	o := NewOrbit()
	o.ApplyTuning(camera.Tuning{
		SmoothingWeight:        0.3,
		MouseRotateSensitivity: 0.05,
		TranslateSensitivity:   0.5,
	})

	if o.SmoothingWeight() != 0.3 {
		t.Fatalf("SmoothingWeight = %f, want 0.3", o.SmoothingWeight())
	}
	if o.MouseRotateSensitivity != (mgl32.Vec2{0.05, 0.05}) {
		t.Fatalf("MouseRotateSensitivity = %v", o.MouseRotateSensitivity)
	}
	if o.MouseTranslateSensitivity != (mgl32.Vec2{0.5, 0.5}) {
		t.Fatalf("MouseTranslateSensitivity = %v", o.MouseTranslateSensitivity)
	}
}
