package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid settings")

// Settings holds everything a session needs at startup.
type Settings struct {
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Title        string `json:"title"`

	// Camera projection, fixed once the camera is created
	FOV  float32 `json:"fov"` // degrees
	Near float32 `json:"near"`
	Far  float32 `json:"far"`

	CameraPosition mgl32.Vec3 `json:"camera_position"`
	CameraTarget   mgl32.Vec3 `json:"camera_target"`

	ParticleTTL     float64    `json:"particle_ttl"` // seconds
	DuckMoveRate    float64    `json:"duck_move_rate"`
	DuckMoveSpeed   float32    `json:"duck_move_speed"`
	FireOffset      mgl32.Vec3 `json:"fire_offset"`
	ProjectileSpeed float32    `json:"projectile_speed"`

	EmitterRate      float64 `json:"emitter_rate"`      // particles per second
	AsteroidInterval float64 `json:"asteroid_interval"` // seconds between spawns, 0 disables

	// Frame caps, 0 = unlimited. A paused session only redraws a still frame.
	FPSLimit       int `json:"fps_limit"`
	PausedFPSLimit int `json:"paused_fps_limit"`

	AssetsDir string `json:"assets_dir"`
	LogLevel  string `json:"log_level"`
}

// Default returns the settings used when no file or flag overrides them.
func Default() Settings {
	return Settings{
		WindowWidth:      512,
		WindowHeight:     512,
		Title:            "mini-scene",
		FOV:              60.0,
		Near:             0.1,
		Far:              100.0,
		CameraPosition:   mgl32.Vec3{0, 5, -20},
		CameraTarget:     mgl32.Vec3{0, 0, 0},
		ParticleTTL:      2.0,
		DuckMoveRate:     0.1,
		DuckMoveSpeed:    6.0,
		FireOffset:       mgl32.Vec3{0.7, 0, 0},
		ProjectileSpeed:  12.0,
		EmitterRate:      20.0,
		AsteroidInterval: 1.5,
		FPSLimit:         120,
		PausedFPSLimit:   30,
		AssetsDir:        "assets",
		LogLevel:         "info",
	}
}

// Load reads a JSON settings file over the defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read settings file: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("could not unmarshal settings json: %w", err)
	}
	return s, nil
}

// RegisterFlags binds the commonly tweaked fields to fs. Flags override file values
// when fs is parsed after Load.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&s.WindowWidth, "width", s.WindowWidth, "window width in pixels")
	fs.IntVar(&s.WindowHeight, "height", s.WindowHeight, "window height in pixels")
	fs.Float64Var(&s.ParticleTTL, "particle-ttl", s.ParticleTTL, "particle time to live in seconds")
	fs.Float64Var(&s.DuckMoveRate, "fire-rate", s.DuckMoveRate, "seconds between duck shots")
	fs.Float64Var(&s.EmitterRate, "emitter-rate", s.EmitterRate, "emitter particles per second")
	fs.Float64Var(&s.AsteroidInterval, "asteroid-interval", s.AsteroidInterval, "seconds between asteroid spawns (0 disables)")
	fs.IntVar(&s.FPSLimit, "fps", s.FPSLimit, "frame rate limit (0 = unlimited)")
	fs.IntVar(&s.PausedFPSLimit, "paused-fps", s.PausedFPSLimit, "frame rate limit while paused (0 = unlimited)")
	fs.StringVar(&s.AssetsDir, "assets", s.AssetsDir, "asset directory")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level: debug, info, warn, error")
}

// FromArgs builds settings for a command: defaults, then the JSON file named
// by -config, then flags. extra registers command-specific flags; it runs once
// per pass so its targets end up holding the flag values.
func FromArgs(name string, args []string, extra func(fs *flag.FlagSet)) (Settings, error) {
	parse := func(s *Settings) (string, error) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		path := fs.String("config", "", "JSON settings file")
		s.RegisterFlags(fs)
		if extra != nil {
			extra(fs)
		}
		return *path, fs.Parse(args)
	}

	s := Default()
	path, err := parse(&s)
	if err != nil {
		return s, err
	}
	if path != "" {
		if s, err = Load(path); err != nil {
			return s, err
		}
		if _, err := parse(&s); err != nil {
			return s, err
		}
	}
	return s, s.Validate()
}

// AspectRatio returns width/height of the configured window.
func (s Settings) AspectRatio() float32 {
	return float32(s.WindowWidth) / float32(s.WindowHeight)
}

// Validate rejects settings that would break the projection or the simulation.
func (s Settings) Validate() error {
	switch {
	case s.WindowWidth <= 0 || s.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.WindowWidth, s.WindowHeight)
	case s.FOV <= 0 || s.FOV >= 180:
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalid, s.FOV)
	case s.Near <= 0 || s.Far <= s.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, s.Near, s.Far)
	case s.ParticleTTL <= 0:
		return fmt.Errorf("%w: particle ttl %v", ErrInvalid, s.ParticleTTL)
	case s.DuckMoveRate < 0 || s.EmitterRate < 0 || s.AsteroidInterval < 0:
		return fmt.Errorf("%w: negative rate", ErrInvalid)
	}
	return nil
}

// ClampFPSLimit normalizes a frame cap. Zero or negative disables it, positive
// values are clamped to [10, 1000].
func ClampFPSLimit(limit int) int {
	switch {
	case limit <= 0:
		return 0
	case limit < 10:
		return 10
	case limit > 1000:
		return 1000
	}
	return limit
}
