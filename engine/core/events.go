package core

import "sync"

// EventCode identifies the kind of event carried by an EventContext.
// Application-defined codes should start beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is a *MouseEvent with the absolute position.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled. Data is a *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// The camera tuning section of the application config changed on disk.
	// Data is application-defined.
	EVENT_CODE_CAMERA_TUNING_CHANGED EventCode = 0x09

	// A request to change the cursor toggle mode of a controller at runtime.
	// Data is application-defined.
	EVENT_CODE_CURSOR_MODE_CHANGED EventCode = 0x0A

	MAX_EVENT_CODE EventCode = 0xFF
)

// EventContext is the envelope fired through the event system. Data holds
// a typed payload owned by the sender; handlers type-assert on it.
type EventContext struct {
	Type EventCode
	Data interface{}
}

// KeyEvent is the payload for key press/release events.
type KeyEvent struct {
	KeyCode KeyCode
}

// MouseEvent is the payload for mouse button, movement and wheel events.
type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

// SystemEvent is the payload for window system events such as resize.
type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// FnOnEvent is invoked for every event fired with a code the handler
// registered for.
type FnOnEvent func(context EventContext)

const eventQueueSize = 512

type eventSystemState struct {
	sync.RWMutex
	registered map[EventCode][]FnOnEvent
	queue      chan EventContext
	done       chan struct{}
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]FnOnEvent),
			queue:      make(chan EventContext, eventQueueSize),
			done:       make(chan struct{}),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	close(eventState.done)
	eventState.Lock()
	eventState.registered = make(map[EventCode][]FnOnEvent)
	eventState.Unlock()
	return nil
}

// EventRegister subscribes a handler to the given code. Handlers are
// invoked from the ProcessEvents goroutine in registration order.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	eventState.Lock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	eventState.Unlock()
	return true
}

// EventFire queues an event for dispatch. If the queue is full the event
// is dropped with a warning; input events are recoverable next frame.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	select {
	case eventState.queue <- context:
		return true
	default:
		LogWarn("event queue full, dropping event with code %d", context.Type)
		return false
	}
}

// ProcessEvents drains the event queue and dispatches to handlers.
// Runs until EventSystemShutdown. Intended to run as a goroutine
// started by the engine.
func ProcessEvents() {
	for {
		select {
		case <-eventState.done:
			return
		case ctx := <-eventState.queue:
			eventState.RLock()
			handlers := eventState.registered[ctx.Type]
			eventState.RUnlock()
			for _, h := range handlers {
				h(ctx)
			}
		}
	}
}
