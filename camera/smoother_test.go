package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	amath "github.com/spaghettifunk/kamera/engine/math"
)

func testPose(eye, target mgl32.Vec3) LookTransform {
	return LookTransform{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

func vec3Near(t *testing.T, name string, got, want mgl32.Vec3, tolerance float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if !amath.FloatEqual(got[i], want[i], tolerance) {
			t.Fatalf("%s = %v, want %v (tolerance %g)", name, got, want, tolerance)
		}
	}
}

func TestSmootherFirstUpdateEmitsRawExactly(t *testing.T) {
	s := NewSmoother(0.9)
	raw := testPose(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6})

	got := s.Update(nil, raw, 1.0/60.0)

	if got != raw {
		t.Fatalf("first update = %+v, want raw %+v", got, raw)
	}
}

func TestSmootherZeroWeightPassesThrough(t *testing.T) {
	s := NewSmoother(0)
	s.Update(nil, testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}), 1.0/60.0)

	raw := testPose(mgl32.Vec3{7, 8, 9}, mgl32.Vec3{7, 8, 8})
	got := s.Update(nil, raw, 1.0/60.0)

	if got != raw {
		t.Fatalf("zero-weight update = %+v, want raw %+v", got, raw)
	}
}

func TestSmootherConvergesToConstantInput(t *testing.T) {
	s := NewSmoother(0.9)
	start := testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	raw := testPose(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{5, 0, -1})

	s.Update(nil, start, 1.0/60.0)
	var got LookTransform
	for i := 0; i < 300; i++ {
		got = s.Update(nil, raw, 1.0/60.0)
	}

	vec3Near(t, "eye after 300 ticks", got.Eye, raw.Eye, 0.01)
	vec3Near(t, "target after 300 ticks", got.Target, raw.Target, 0.01)
}

func TestSmootherMovesMonotonically(t *testing.T) {
	s := NewSmoother(0.9)
	start := testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	raw := testPose(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{10, 0, -1})

	s.Update(nil, start, 1.0/60.0)
	previous := float32(0)
	for i := 0; i < 20; i++ {
		got := s.Update(nil, raw, 1.0/60.0)
		if got.Eye.X() <= previous {
			t.Fatalf("tick %d: eye.X %f did not advance past %f", i, got.Eye.X(), previous)
		}
		if got.Eye.X() > raw.Eye.X() {
			t.Fatalf("tick %d: eye.X %f overshot target %f", i, got.Eye.X(), raw.Eye.X())
		}
		previous = got.Eye.X()
	}
}

// Two simulations covering the same wall-clock second at different tick
// rates must land on the same pose.
func TestSmootherFrameRateInvariance(t *testing.T) {
	start := testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	raw := testPose(mgl32.Vec3{5, 1, -2}, mgl32.Vec3{5, 1, -3})

	run := func(dt float32, steps int) LookTransform {
		s := NewSmoother(0.9)
		s.Update(nil, start, dt)
		var got LookTransform
		for i := 0; i < steps; i++ {
			got = s.Update(nil, raw, dt)
		}
		return got
	}

	at60 := run(1.0/60.0, 60)
	at30 := run(1.0/30.0, 30)

	vec3Near(t, "eye", at30.Eye, at60.Eye, 1e-3)
	vec3Near(t, "target", at30.Target, at60.Target, 1e-3)
	vec3Near(t, "up", at30.Up, at60.Up, 1e-3)
}

func TestSmootherWeightOverride(t *testing.T) {
	s := NewSmoother(0.9)
	s.Update(nil, testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}), 1.0/60.0)

	raw := testPose(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{3, 0, -1})
	zero := float32(0)
	got := s.Update(&zero, raw, 1.0/60.0)

	if got != raw {
		t.Fatalf("override-0 update = %+v, want raw %+v", got, raw)
	}
	if s.Weight() != 0.9 {
		t.Fatalf("override mutated stored weight: %f", s.Weight())
	}
}

func TestSmootherGuardsBadInput(t *testing.T) {
	nan := amath.Sqrt(-1)

	seed := testPose(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 0})
	raw := testPose(mgl32.Vec3{9, 9, 9}, mgl32.Vec3{9, 9, 8})
	nanPose := testPose(mgl32.Vec3{nan, 0, 0}, mgl32.Vec3{0, 0, -1})

	tests := []struct {
		name   string
		update func(s *Smoother) LookTransform
	}{
		{"zero dt", func(s *Smoother) LookTransform { return s.Update(nil, raw, 0) }},
		{"negative dt", func(s *Smoother) LookTransform { return s.Update(nil, raw, -1.0/60.0) }},
		{"nan dt", func(s *Smoother) LookTransform { return s.Update(nil, raw, nan) }},
		{"nan pose", func(s *Smoother) LookTransform { return s.Update(nil, nanPose, 1.0/60.0) }},
		{"nan override", func(s *Smoother) LookTransform { return s.Update(&nan, raw, 1.0/60.0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(0.9)
			s.Update(nil, seed, 1.0/60.0)

			if got := tt.update(s); got != seed {
				t.Fatalf("guarded update moved the pose: %+v", got)
			}
			// State must be untouched: the next valid update still blends
			// from the seed pose.
			next := s.Update(nil, seed, 1.0/60.0)
			if next != seed {
				t.Fatalf("lag pose corrupted by guarded update: %+v", next)
			}
		})
	}
}

func TestSmootherResetSnapsToNextInput(t *testing.T) {
	s := NewSmoother(0.95)
	s.Update(nil, testPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}), 1.0/60.0)
	s.Update(nil, testPose(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, -1}), 1.0/60.0)

	s.Reset()

	raw := testPose(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{100, 0, -1})
	if got := s.Update(nil, raw, 1.0/60.0); got != raw {
		t.Fatalf("post-reset update = %+v, want raw %+v", got, raw)
	}
}

func TestSmootherWeightClamping(t *testing.T) {
	nan := amath.Sqrt(-1)

	tests := []struct {
		name  string
		in    float32
		check func(w float32) bool
	}{
		{"negative", -0.5, func(w float32) bool { return w == 0 }},
		{"above one", 2.0, func(w float32) bool { return w < 1.0 }},
		{"nan", nan, func(w float32) bool { return w == 0 }},
		{"in range", 0.5, func(w float32) bool { return w == 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(tt.in)
			if !tt.check(s.Weight()) {
				t.Fatalf("NewSmoother(%f).Weight() = %f", tt.in, s.Weight())
			}
		})
	}
}
