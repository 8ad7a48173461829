package game

import (
	"mini-scene/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow creates the window and makes its GL 4.1 core context current.
// glfw must already be initialised.
func SetupWindow(cfg config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// Disable V-Sync; we'll use our own FPS limiter
	glfw.SwapInterval(0)
	return window, nil
}
