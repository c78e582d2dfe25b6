package engine

import (
	"runtime"
	"testing"
	"time"

	"github.com/spaghettifunk/kamera/engine/core"
)

func TestEngineQuitEventStopsRunLoop(t *testing.T) {
	e, err := New(&Game{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.isRunning.Load() {
		t.Fatal("engine should start in the running state")
	}

	// In production the quit handler runs on the event-pump goroutine
	// while the run loop polls the flag, so exercise the same cross-
	// goroutine write/read here.
	go e.onEvent(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})

	deadline := time.After(2 * time.Second)
	for e.isRunning.Load() {
		select {
		case <-deadline:
			t.Fatal("quit event did not stop the engine")
		default:
			runtime.Gosched()
		}
	}
}

func TestEngineResizeSuspendsAndResumes(t *testing.T) {
	var resizedTo [2]uint32
	game := &Game{
		FnOnResize: func(width uint32, height uint32) error {
			resizedTo = [2]uint32{width, height}
			return nil
		},
	}
	e, err := New(game)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// A zero dimension means minimized: suspend and skip the game callback.
	e.onResized(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 0, WindowHeight: 720},
	})
	if !e.isSuspended.Load() {
		t.Fatal("zero-size resize should suspend the engine")
	}
	if resizedTo != [2]uint32{} {
		t.Fatalf("game resize callback ran while minimized: %v", resizedTo)
	}

	e.onResized(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 800, WindowHeight: 600},
	})
	if e.isSuspended.Load() {
		t.Fatal("non-zero resize should resume the engine")
	}
	if resizedTo != [2]uint32{800, 600} {
		t.Fatalf("game resize callback got %v, want [800 600]", resizedTo)
	}
}
