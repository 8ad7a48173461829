// Command scene-preview runs the scene without a window and writes the last
// frame as a PNG, one disc per entity.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"mini-scene/internal/config"
	"mini-scene/internal/game"
	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/preview"
	"mini-scene/internal/input"
	"mini-scene/internal/logging"
)

func main() {
	var (
		out    string
		frames int
		step   float64
		fire   bool
	)
	cfg, err := config.FromArgs("scene-preview", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&out, "out", "scene.png", "output PNG path")
		fs.IntVar(&frames, "frames", 120, "frames to simulate")
		fs.Float64Var(&step, "dt", 1.0/60, "seconds per frame")
		fs.BoolVar(&fire, "fire", true, "hold the fire action")
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.SetLogger(logging.New(os.Stderr, cfg.LogLevel))

	if err := run(cfg, out, frames, step, fire); err != nil {
		logging.Logger().Error("preview failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Settings, out string, frames int, step float64, fire bool) error {
	in := &scripted{held: input.Static{input.ActionFire: fire}}
	session, err := game.NewSession(cfg, graphics.NewHeadlessLoader(cfg.AssetsDir), in)
	if err != nil {
		return err
	}
	defer session.Close()

	for range frames {
		session.Update(step)
		if session.GameOver {
			logging.Logger().Info("game over", "entities", session.Scene.Len())
			break
		}
	}

	backend := preview.New(cfg.WindowWidth, cfg.WindowHeight)
	defer backend.Close()
	session.Render(backend)
	if err := backend.SavePNG(out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	logging.Logger().Info("wrote preview", "path", out, "entities", session.Scene.Len(), "discs", len(backend.Discs()))
	return nil
}

// scripted is a fixed input with no edges and no pointer
type scripted struct {
	held input.Static
}

func (s *scripted) IsActive(a input.Action) bool  { return s.held.IsActive(a) }
func (s *scripted) JustPressed(input.Action) bool { return false }
func (s *scripted) Clicks() []input.Click         { return nil }
