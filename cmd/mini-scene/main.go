package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"mini-scene/internal/config"
	"mini-scene/internal/game"
	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/input"
	"mini-scene/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var profileMode string
	cfg, err := config.FromArgs("mini-scene", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&profileMode, "profile", "", "write a cpu or mem profile to the working directory")
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logging.SetLogger(logging.New(os.Stderr, cfg.LogLevel))

	// closer runs the bound cleanups on SIGINT/SIGTERM as well as on Close
	if stop := startProfile(profileMode); stop != nil {
		closer.Bind(stop)
	}

	run(cfg)
	closer.Close()
}

// run owns the window and GL context. It returns once the window is closed.
func run(cfg config.Settings) {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	im := input.NewInputManager()
	im.Attach(window)

	backend := renderer.NewGLBackend()
	session, err := game.NewSession(cfg, graphics.NewGLLoader(cfg.AssetsDir), im)
	if err != nil {
		panic(err)
	}
	defer session.Close()

	app := game.NewApp(window, im, backend, session)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.RefreshRender()
	})

	logging.Logger().Info("starting", "window", fmt.Sprintf("%dx%d", cfg.WindowWidth, cfg.WindowHeight), "assets", cfg.AssetsDir)
	app.Run()
}

func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	default:
		logging.Logger().Warn("unknown profile mode", "mode", mode)
		return nil
	}
	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	return p.Stop
}
