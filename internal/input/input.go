package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionFire
	ActionSpawnParticle
	ActionPause
	ActionClick
	ActionCount // Sentinel value for array sizing
)

// Click is a pointer press in window coordinates (origin top-left)
type Click struct {
	X, Y float64
}

// Source is the read-only view entities get of the input state
type Source interface {
	IsActive(action Action) bool
}

// Static is a fixed input state, used by headless runs and tests
type Static map[Action]bool

// IsActive reports whether the action is held
func (s Static) IsActive(action Action) bool {
	return s[action]
}

// InputManager maps physical keys/buttons to logical actions and tracks their state
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
	clicks           []Click
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeyW, ActionMoveUp)
	im.BindKey(glfw.KeyUp, ActionMoveUp)
	im.BindKey(glfw.KeyS, ActionMoveDown)
	im.BindKey(glfw.KeyDown, ActionMoveDown)
	im.BindKey(glfw.KeySpace, ActionFire)
	im.BindKey(glfw.KeyEnter, ActionSpawnParticle)
	im.BindKey(glfw.KeyEscape, ActionPause)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionClick)

	return im
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event. Repeat counts as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, ok := im.keyToActions[key]
	if !ok {
		return
	}
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event. A press bound to
// ActionClick also queues a Click at the last known cursor position.
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, ok := im.mouseButtonToActions[button]
	if !ok {
		return
	}
	pressed := action == glfw.Press
	for _, act := range actions {
		if act == ActionClick && pressed {
			im.clicks = append(im.clicks, Click{X: im.cursorX, Y: im.cursorY})
		}
	}
	im.apply(actions, pressed)
}

// HandleCursorPos records the pointer position
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursorX, im.cursorY = x, y
}

// apply must be called with im.mu held
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// Attach installs the GLFW callbacks that feed this manager
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		im.HandleCursorPos(xpos, ypos)
	})
}

// Clicks drains the queued pointer clicks in arrival order
func (im *InputManager) Clicks() []Click {
	im.mu.Lock()
	defer im.mu.Unlock()
	out := im.clicks
	im.clicks = nil
	return out
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	clear(im.justPressed[:])
	clear(im.justReleased[:])
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}
