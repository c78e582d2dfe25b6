package camera

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kamera/engine/core"
	amath "github.com/spaghettifunk/kamera/engine/math"
)

func TestNewLookAnglesFromVectorKnownDirections(t *testing.T) {
	tests := []struct {
		name      string
		direction mgl32.Vec3
		yaw       float32
		pitch     float32
	}{
		{"forward", mgl32.Vec3{0, 0, -1}, 0, 0},
		{"back", mgl32.Vec3{0, 0, 1}, amath.K_PI, 0},
		{"left", mgl32.Vec3{-1, 0, 0}, amath.K_HALF_PI, 0},
		{"right", mgl32.Vec3{1, 0, 0}, -amath.K_HALF_PI, 0},
		{"forward up 45", mgl32.Vec3{0, 1, -1}, 0, amath.K_PI / 4},
		{"non-unit forward", mgl32.Vec3{0, 0, -10}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angles, err := NewLookAnglesFromVector(tt.direction)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !amath.FloatEqual(angles.Yaw(), tt.yaw, 1e-5) {
				t.Errorf("yaw = %f, want %f", angles.Yaw(), tt.yaw)
			}
			if !amath.FloatEqual(angles.Pitch(), tt.pitch, 1e-5) {
				t.Errorf("pitch = %f, want %f", angles.Pitch(), tt.pitch)
			}
		})
	}
}

func TestNewLookAnglesFromVectorZeroLength(t *testing.T) {
	_, err := NewLookAnglesFromVector(mgl32.Vec3{0, 0, 0})
	if !errors.Is(err, core.ErrZeroLengthVector) {
		t.Fatalf("err = %v, want ErrZeroLengthVector", err)
	}
}

// UnitVector and NewLookAnglesFromVector must be exact inverses away from
// the poles.
func TestLookAnglesUnitVectorRoundTrip(t *testing.T) {
	yaws := []float32{-3.0, -amath.K_HALF_PI, -0.7, 0, 0.3, amath.K_HALF_PI, 2.9}
	pitches := []float32{-1.4, -0.5, 0, 0.5, 1.4}

	for _, yaw := range yaws {
		for _, pitch := range pitches {
			angles := NewLookAngles(yaw, pitch)
			v := angles.UnitVector()

			if !amath.FloatEqual(v.Len(), 1.0, 1e-5) {
				t.Fatalf("yaw=%f pitch=%f: |UnitVector| = %f", yaw, pitch, v.Len())
			}

			back, err := NewLookAnglesFromVector(v)
			if err != nil {
				t.Fatalf("yaw=%f pitch=%f: %v", yaw, pitch, err)
			}
			if !amath.FloatEqual(back.Yaw(), angles.Yaw(), 1e-4) {
				t.Errorf("yaw=%f pitch=%f: round-trip yaw = %f", yaw, pitch, back.Yaw())
			}
			if !amath.FloatEqual(back.Pitch(), angles.Pitch(), 1e-4) {
				t.Errorf("yaw=%f pitch=%f: round-trip pitch = %f", yaw, pitch, back.Pitch())
			}
		}
	}
}

func TestLookAnglesYawWraps(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{amath.K_PI_2, 0},
		{amath.K_PI + 0.5, -amath.K_PI + 0.5},
		{-amath.K_PI - 0.5, amath.K_PI - 0.5},
		{5 * amath.K_HALF_PI, amath.K_HALF_PI},
	}
	for _, tt := range tests {
		a := LookAngles{}
		a.SetYaw(tt.in)
		if !amath.FloatEqual(a.Yaw(), tt.want, 1e-5) {
			t.Errorf("SetYaw(%f): yaw = %f, want %f", tt.in, a.Yaw(), tt.want)
		}
	}
}

func TestLookAnglesYawAccumulatesContinuously(t *testing.T) {
	a := LookAngles{}
	// Many full turns in small increments must never jump: each step moves
	// the unit vector by roughly the step angle.
	const step = 0.1
	prev := a.UnitVector()
	for i := 0; i < 200; i++ {
		a.AddYaw(step)
		v := a.UnitVector()
		if d := v.Sub(prev).Len(); d > 2*step {
			t.Fatalf("step %d: unit vector jumped by %f", i, d)
		}
		prev = v
	}
}

func TestLookAnglesPitchSaturates(t *testing.T) {
	tests := []struct {
		name  string
		build func() LookAngles
		want  float32
	}{
		{"set far above", func() LookAngles { return NewLookAngles(0, 100) }, maxPitch},
		{"set far below", func() LookAngles { return NewLookAngles(0, -100) }, -maxPitch},
		{"add past pole", func() LookAngles {
			a := NewLookAngles(0, 1.0)
			for i := 0; i < 50; i++ {
				a.AddPitch(0.5)
			}
			return a
		}, maxPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.build()
			if a.Pitch() != tt.want {
				t.Fatalf("pitch = %f, want %f", a.Pitch(), tt.want)
			}
		})
	}
}

func TestLookAnglesStraightUpInputSaturates(t *testing.T) {
	a, err := NewLookAnglesFromVector(mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Pitch() != maxPitch {
		t.Fatalf("pitch = %f, want %f", a.Pitch(), maxPitch)
	}
}

func TestLookAnglesClampKeepsAssertMargin(t *testing.T) {
	// The saturation limit must sit well clear of the fatal-assert margin,
	// otherwise a fully-clamped pipeline could still trip the assert.
	a := NewLookAngles(0, 100)
	if amath.K_HALF_PI-amath.Abs(a.Pitch()) < pitchAssertMargin {
		t.Fatalf("clamped pitch %f is inside the assert margin", a.Pitch())
	}
}
