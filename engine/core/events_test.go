package core

import (
	"testing"
	"time"
)

func TestEventSystemRegisterAndFire(t *testing.T) {
	// Before initialization both entry points must refuse cleanly.
	if EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) {}) {
		t.Fatal("EventRegister before initialize should return false")
	}
	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Fatal("EventFire before initialize should return false")
	}

	if !EventSystemInitialize() {
		t.Fatal("EventSystemInitialize failed")
	}

	received := make(chan EventContext, 1)
	if !EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) {
		received <- ctx
	}) {
		t.Fatal("EventRegister failed")
	}
	go ProcessEvents()

	payload := &KeyEvent{KeyCode: KEY_W}
	if !EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: payload}) {
		t.Fatal("EventFire failed")
	}

	select {
	case ctx := <-received:
		if ctx.Type != EVENT_CODE_KEY_PRESSED {
			t.Fatalf("dispatched code = %d, want %d", ctx.Type, EVENT_CODE_KEY_PRESSED)
		}
		key, ok := ctx.Data.(*KeyEvent)
		if !ok || key.KeyCode != KEY_W {
			t.Fatalf("dispatched payload = %+v", ctx.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event was never dispatched")
	}
}

func TestEventFireIgnoresUnregisteredCodes(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("EventSystemInitialize failed")
	}
	// No handler registered for this code: firing must still succeed.
	if !EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 1, WindowHeight: 1}}) {
		t.Fatal("EventFire for an unregistered code should succeed")
	}
}
