package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	assert.True(t, im.IsActive(ActionFire))
	assert.True(t, im.JustPressed(ActionFire))

	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeySpace, glfw.Repeat)
	assert.True(t, im.IsActive(ActionFire))
	assert.False(t, im.JustPressed(ActionFire))

	im.HandleKeyEvent(glfw.KeySpace, glfw.Release)
	assert.False(t, im.IsActive(ActionFire))
	assert.True(t, im.JustReleased(ActionFire))

	im.PostUpdate()
	assert.False(t, im.JustReleased(ActionFire))
}

func TestAlternateBindings(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveLeft))
	im.HandleKeyEvent(glfw.KeyA, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveLeft))

	im.UnbindKey(glfw.KeyLeft)
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	assert.False(t, im.IsActive(ActionMoveLeft))
}

func TestUnboundAndOutOfRange(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	for a := range ActionCount {
		assert.False(t, im.IsActive(a))
	}

	im.BindKey(glfw.KeyF12, ActionCount)
	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	assert.False(t, im.IsActive(ActionCount))
	assert.False(t, im.JustPressed(-1))
}

func TestClicksQueueAtCursor(t *testing.T) {
	im := NewInputManager()

	im.HandleCursorPos(10, 20)
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
	im.HandleCursorPos(30, 40)
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)

	assert.Equal(t, []Click{{X: 10, Y: 20}, {X: 30, Y: 40}}, im.Clicks())
	assert.Empty(t, im.Clicks())
	assert.True(t, im.IsActive(ActionClick))
}

func TestStatic(t *testing.T) {
	var src Source = Static{ActionFire: true}
	assert.True(t, src.IsActive(ActionFire))
	assert.False(t, src.IsActive(ActionMoveLeft))
}
