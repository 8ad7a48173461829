package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"mini-scene/internal/config"
	"mini-scene/internal/entity"
	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/input"
	"mini-scene/internal/logging"
	"mini-scene/internal/profiling"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Input is what a session reads each frame. *input.InputManager implements it.
type Input interface {
	input.Source
	JustPressed(action input.Action) bool
	Clicks() []input.Click
}

// clickHandler is implemented by entities that react to pointer clicks
type clickHandler interface {
	OnClick(h scene.Handle, r graphics.Ray) bool
}

// asteroidSpawnRadius is where new asteroids appear, inside the default bounds
const asteroidSpawnRadius = 20.0

type Session struct {
	Settings config.Settings
	Cache    *resource.Cache
	Scene    *scene.Scene
	Camera   *graphics.Camera

	Paused   bool
	GameOver bool

	input         Input
	duckID        scene.ID
	selectedID    scene.ID
	asteroidTimer float64
	lastDT        float64
	width, height int
	rng           *rand.Rand
}

// NewSession builds the cache, camera and initial scene. Every entity kind is
// preloaded here so a missing asset fails the session instead of a frame.
func NewSession(cfg config.Settings, loader resource.Loader, in Input) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache := resource.NewCache(loader)
	if err := cache.Preload(entity.Descriptors()...); err != nil {
		cache.Release()
		return nil, fmt.Errorf("preload render resources: %w", err)
	}

	cam := graphics.NewCamera(cfg.FOV, cfg.AspectRatio(), cfg.Near, cfg.Far)
	cam.Position = cfg.CameraPosition
	cam.Target = cfg.CameraTarget
	cam.Update()

	s := &Session{
		Settings: cfg,
		Cache:    cache,
		Scene:    scene.New(),
		Camera:   cam,
		input:    in,
		width:    cfg.WindowWidth,
		height:   cfg.WindowHeight,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	s.populate()
	return s, nil
}

// populate adds the axes, a spinning cube, the duck and a fireworks emitter
func (s *Session) populate() {
	cfg := s.Settings

	for _, axis := range entity.NewAxes(s.Cache, 3) {
		s.Scene.Add(axis)
	}

	cube := entity.NewCube(s.Cache, mgl32.Vec3{-5, 3, 4}, mgl32.Vec3{0.3, 0.8, 0.9})
	cube.AngularVelocity = mgl32.Vec3{30, 45, 0}
	s.Scene.Add(cube)

	duck := entity.NewDuck(s.Cache, s.input, mgl32.Vec3{})
	duck.SetMoveRate(cfg.DuckMoveRate)
	duck.MoveSpeed = cfg.DuckMoveSpeed
	duck.FireOffset = cfg.FireOffset
	duck.ProjectileSpeed = cfg.ProjectileSpeed
	duck.ProjectileTTL = cfg.ParticleTTL
	duck.OnGameOver = func() {
		s.GameOver = true
	}
	s.duckID = s.Scene.Add(duck)

	if cfg.EmitterRate > 0 {
		em := entity.NewEmitter(s.Cache, entity.Fireworks, mgl32.Vec3{6, 6, 8}, cfg.EmitterRate, s.rng.Uint64())
		em.ParticleTTL = cfg.ParticleTTL
		s.Scene.Add(em)
	}
}

// Update advances the session by one frame
func (s *Session) Update(dt float64) {
	defer profiling.Track("session.Update")()
	dt = scene.SanitizeDelta(dt)

	if s.input != nil {
		if s.input.JustPressed(input.ActionPause) {
			s.Paused = !s.Paused
		}
		if s.input.JustPressed(input.ActionSpawnParticle) && !s.Paused {
			s.SpawnParticle()
		}
		s.dispatchClicks(s.input.Clicks())
	}

	if s.Paused || s.GameOver {
		dt = 0
	}
	s.lastDT = dt

	s.spawnAsteroids(dt)
	s.Scene.Update(dt)
	s.Camera.Update()
}

// SpawnParticle appends one particle from outside the update pass
func (s *Session) SpawnParticle() scene.ID {
	pos := mgl32.Vec3{s.randRange(-3, 3), s.randRange(-3, 3), 0}
	vel := mgl32.Vec3{s.randRange(-1, 1), s.randRange(0.5, 2), s.randRange(-1, 1)}
	p := entity.NewParticle(s.Cache, pos, vel, s.Settings.ParticleTTL)
	p.Color = mgl32.Vec3{1, 0.4, 0.4}
	return s.Scene.Add(p)
}

func (s *Session) spawnAsteroids(dt float64) {
	interval := s.Settings.AsteroidInterval
	if interval <= 0 {
		return
	}
	s.asteroidTimer += dt
	for s.asteroidTimer >= interval {
		s.asteroidTimer -= interval
		s.SpawnAsteroid()
	}
}

// SpawnAsteroid adds an asteroid on the spawn circle heading roughly at the origin
func (s *Session) SpawnAsteroid() scene.ID {
	angle := s.rng.Float64() * 2 * math.Pi
	pos := mgl32.Vec3{
		float32(asteroidSpawnRadius * math.Cos(angle)),
		float32(asteroidSpawnRadius * math.Sin(angle)),
		0,
	}
	aim := mgl32.Vec3{s.randRange(-2, 2), s.randRange(-2, 2), 0}
	vel := aim.Sub(pos).Normalize().Mul(s.randRange(2, 4))
	return s.Scene.Add(entity.NewAsteroid(s.Cache, pos, vel, s.randRange(0.5, 1.2)))
}

func (s *Session) dispatchClicks(clicks []input.Click) {
	for _, c := range clicks {
		x, y := graphics.ScreenToNDC(c.X, c.Y, s.width, s.height)
		ray := s.Camera.Ray(x, y)
		id, e, ok := s.Scene.Pick(ray)
		if !ok {
			continue
		}
		h, ok := e.(clickHandler)
		if !ok || !h.OnClick(s.Scene, ray) {
			continue
		}
		if d, isDuck := e.(*entity.Duck); isDuck && !d.Selected {
			s.selectedID = 0
		} else {
			s.selectedID = id
		}
		logging.Logger().Debug("click", "id", id, "x", c.X, "y", c.Y)
	}
}

// Render draws the scene through backend
func (s *Session) Render(backend renderer.Backend) {
	defer profiling.Track("session.Render")()
	s.Scene.Render(renderer.RenderContext{Camera: s.Camera, Backend: backend, DT: s.lastDT})
}

// Duck returns the player while it is alive
func (s *Session) Duck() (*entity.Duck, bool) {
	e, ok := s.Scene.Lookup(s.duckID)
	if !ok {
		return nil, false
	}
	d, ok := e.(*entity.Duck)
	return d, ok
}

// Selected returns the last clicked entity while it is alive
func (s *Session) Selected() (scene.Entity, bool) {
	if s.selectedID == 0 {
		return nil, false
	}
	return s.Scene.Lookup(s.selectedID)
}

// SetViewportSize updates the window size used to turn clicks into rays.
// The projection keeps its aspect ratio.
func (s *Session) SetViewportSize(width, height int) {
	if width > 0 && height > 0 {
		s.width, s.height = width, height
	}
}

// Close drops every entity and releases the render resources
func (s *Session) Close() {
	s.Scene.Clear()
	s.Cache.Release()
}

func (s *Session) randRange(lo, hi float32) float32 {
	return lo + (hi-lo)*s.rng.Float32()
}
