package core

import "sync"

// Key code definitions
type KeyCode uint16

const (
	KEY_ENTER  KeyCode = 0x0D
	KEY_ESCAPE KeyCode = 0x1B
	KEY_SPACE  KeyCode = 0x20
	KEY_LEFT   KeyCode = 0x25
	KEY_UP     KeyCode = 0x26
	KEY_RIGHT  KeyCode = 0x27
	KEY_DOWN   KeyCode = 0x28
	KEY_0      KeyCode = 0x30
	KEY_1      KeyCode = 0x31
	KEY_2      KeyCode = 0x32
	KEY_3      KeyCode = 0x33
	KEY_A      KeyCode = 0x41
	KEY_C      KeyCode = 0x43
	KEY_P      KeyCode = 0x50
	KEY_Q      KeyCode = 0x51
	KEY_R      KeyCode = 0x52
	KEY_S      KeyCode = 0x53
	KEY_W      KeyCode = 0x57
	KEY_X      KeyCode = 0x58
	KEY_Z      KeyCode = 0x5A
	KEY_F12    KeyCode = 0x7B
)

// Keyboard state structure
type KeyboardState struct {
	Keys [256]bool
}

// Input state structure that holds current and previous keyboard states
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
}

var inputMu sync.Mutex
var inputState *InputState = nil

func InputInitialize() error {
	inputMu.Lock()
	defer inputMu.Unlock()
	if inputState == nil {
		inputState = &InputState{}
	}
	LogDebug("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMu.Lock()
	defer inputMu.Unlock()
	inputState = nil
	return nil
}

// InputUpdate copies the current state to the previous one. Call it once at
// the end of every frame, after all input for the frame has been consumed.
func InputUpdate(deltaTime float64) error {
	inputMu.Lock()
	defer inputMu.Unlock()
	if inputState == nil {
		return nil
	}
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	return nil
}

func InputIsKeyDown(key KeyCode) bool {
	inputMu.Lock()
	defer inputMu.Unlock()
	if inputState == nil {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key&0xFF]
}

func InputWasKeyDown(key KeyCode) bool {
	inputMu.Lock()
	defer inputMu.Unlock()
	if inputState == nil {
		return false
	}
	return inputState.KeyboardPrevious.Keys[key&0xFF]
}

// InputIsKeyPressed reports a key that went down during the current frame.
func InputIsKeyPressed(key KeyCode) bool {
	return InputIsKeyDown(key) && !InputWasKeyDown(key)
}

// InputProcessKey records a key transition and fires the matching event.
func InputProcessKey(key KeyCode, pressed bool) error {
	inputMu.Lock()
	if inputState == nil {
		inputMu.Unlock()
		return ErrNotInitialized
	}
	// Only handle this if the state actually changed.
	if inputState.KeyboardCurrent.Keys[key&0xFF] == pressed {
		inputMu.Unlock()
		return nil
	}
	inputState.KeyboardCurrent.Keys[key&0xFF] = pressed
	inputMu.Unlock()

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	// Fire off an event for immediate processing.
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
	return nil
}
