package game

import (
	"time"

	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/input"
	"mini-scene/internal/logging"
	"mini-scene/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the processing time above which a frame is logged
const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	backend      *renderer.GLBackend
	session      *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	reported   bool
}

func NewApp(window *glfw.Window, im *input.InputManager, backend *renderer.GLBackend, session *Session) *App {
	width, height := window.GetFramebufferSize()
	backend.SetViewport(width, height)

	return &App{
		window:       window,
		inputManager: im,
		backend:      backend,
		session:      session,
		fpsLimiter:   NewFPSLimiter(session.Settings),
		lastTime:     time.Now(),
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.session.Update(dt)
	if a.session.GameOver && !a.reported {
		logging.Logger().Info("game over", "entities", a.session.Scene.Len())
		a.reported = true
	}

	a.backend.BeginFrame()
	a.session.Render(a.backend)
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > slowFrame {
		logging.Logger().Warn("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.fpsLimiter.Wait(a.session.Paused)
}

// RefreshRender handles window resize repaints
func (a *App) RefreshRender() {
	fbw, fbh := a.window.GetFramebufferSize()
	a.backend.SetViewport(fbw, fbh)
	w, h := a.window.GetSize()
	a.session.SetViewportSize(w, h)

	a.backend.BeginFrame()
	a.session.Render(a.backend)
	a.window.SwapBuffers()
}
