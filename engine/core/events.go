package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	// A configuration file was reloaded from disk. Data: the parsed config.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x10

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// Should return true if handled. A handled event is not passed on to
// listeners registered after this one.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint32
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	nextID     uint32
	registered map[EventCode][]registeredEvent
}

var eventState *eventSystemState

func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[EventCode][]registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mu.Lock()
	eventState.registered = make(map[EventCode][]registeredEvent)
	eventState.mu.Unlock()
	eventState = nil
	return nil
}

// EventRegister adds a listener for code and returns an id usable with
// EventUnregister. The id is 0 if the event system is not initialized.
func EventRegister(code EventCode, onEvent FnOnEvent) uint32 {
	if eventState == nil || onEvent == nil {
		return 0
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		id:       eventState.nextID,
		callback: onEvent,
	})
	return eventState.nextID
}

func EventUnregister(code EventCode, id uint32) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	events := eventState.registered[code]
	for i, e := range events {
		if e.id == id {
			eventState.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire delivers context to listeners of its code in registration order,
// stopping at the first one that reports the event handled.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.RLock()
	events := append([]registeredEvent(nil), eventState.registered[context.Type]...)
	eventState.mu.RUnlock()

	for _, e := range events {
		if e.callback(context) {
			return true
		}
	}
	return false
}
