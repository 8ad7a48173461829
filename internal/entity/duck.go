package entity

import (
	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/input"
	"mini-scene/internal/logging"
	"mini-scene/internal/resource"
	"mini-scene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Duck defaults
const (
	DefaultMoveRate        = 0.1 // seconds between shots
	DefaultMoveSpeed       = 6.0 // units per second
	DefaultProjectileSpeed = 12.0
	DefaultProjectileTTL   = 2.0
	DefaultDuckRadius      = 0.5
)

// Hostile entities end the game when they touch the duck
type Hostile interface {
	scene.Entity
	BoundingSphere() (center mgl32.Vec3, radius float32)
}

// Duck is the player. It moves on the XY plane, fires projectiles while the
// fire action is held and dies when a Hostile reaches it.
type Duck struct {
	Transform
	Input input.Source

	MoveRate        float64
	MoveSpeed       float32
	FireOffset      mgl32.Vec3
	ProjectileSpeed float32
	ProjectileTTL   float64
	Radius          float32

	Color    mgl32.Vec3
	Selected bool

	// OnGameOver is called once, from the update in which the duck is hit.
	OnGameOver func()

	cooldown float64
	cache    *resource.Cache
	look     appearance
}

// NewDuck creates a duck at pos reading in. cache may be nil for headless use.
func NewDuck(cache *resource.Cache, in input.Source, pos mgl32.Vec3) *Duck {
	return &Duck{
		Transform:       NewTransform(pos),
		Input:           in,
		MoveRate:        DefaultMoveRate,
		MoveSpeed:       DefaultMoveSpeed,
		FireOffset:      mgl32.Vec3{0.7, 0, 0},
		ProjectileSpeed: DefaultProjectileSpeed,
		ProjectileTTL:   DefaultProjectileTTL,
		Radius:          DefaultDuckRadius,
		Color:           mgl32.Vec3{1, 1, 1},
		cooldown:        DefaultMoveRate,
		cache:           cache,
		look:            newAppearance(cache, DuckDescriptor),
	}
}

// SetMoveRate changes the fire interval and restarts the cooldown
func (d *Duck) SetMoveRate(rate float64) {
	d.MoveRate = rate
	d.cooldown = rate
}

// Cooldown returns the seconds left before the duck may fire again
func (d *Duck) Cooldown() float64 {
	return d.cooldown
}

// Update moves the duck, fires when the cooldown allows and reports false once a hostile hits it
func (d *Duck) Update(dt float64, h scene.Handle) bool {
	d.move(dt)

	d.cooldown -= dt
	if d.cooldown < 0 {
		d.cooldown = 0
	}
	// dt == 0 is a paused frame, never a shot
	if d.cooldown == 0 && dt > 0 && d.active(input.ActionFire) {
		d.fire(h)
		d.cooldown = d.MoveRate
	}

	if hit, ok := d.hitBy(h); ok {
		logging.Logger().Info("duck hit", "by", hit)
		if d.OnGameOver != nil {
			d.OnGameOver()
		}
		return false
	}
	return true
}

func (d *Duck) active(a input.Action) bool {
	return d.Input != nil && d.Input.IsActive(a)
}

// move applies held direction actions. The default camera looks down +Z,
// so screen right is -X.
func (d *Duck) move(dt float64) {
	var dir mgl32.Vec3
	if d.active(input.ActionMoveLeft) {
		dir[0]++
	}
	if d.active(input.ActionMoveRight) {
		dir[0]--
	}
	if d.active(input.ActionMoveUp) {
		dir[1]++
	}
	if d.active(input.ActionMoveDown) {
		dir[1]--
	}
	if dir.Len() == 0 {
		return
	}
	d.Position = d.Position.Add(dir.Normalize().Mul(d.MoveSpeed * float32(dt)))
}

func (d *Duck) fire(h scene.Handle) {
	dir := mgl32.Vec3{0, 1, 0}
	if d.FireOffset.Len() > 0 {
		dir = d.FireOffset.Normalize()
	}
	p := NewParticle(d.cache, d.Position.Add(d.FireOffset), dir.Mul(d.ProjectileSpeed), d.ProjectileTTL)
	p.Projectile = true
	p.Color = mgl32.Vec3{1, 0.85, 0.2}
	h.Spawn(p)
}

func (d *Duck) hitBy(h scene.Handle) (scene.ID, bool) {
	var (
		hitID scene.ID
		found bool
	)
	h.Each(func(id scene.ID, e scene.Entity) bool {
		hostile, ok := e.(Hostile)
		if !ok {
			return true
		}
		c, r := hostile.BoundingSphere()
		if overlaps(d.Position, d.Radius, c, r) {
			hitID, found = id, true
			return false
		}
		return true
	})
	return hitID, found
}

// Render draws the duck, tinted while selected
func (d *Duck) Render(ctx renderer.RenderContext) {
	color := d.Color
	if d.Selected {
		color = mgl32.Vec3{1, 0.5, 0.5}
	}
	d.look.draw(ctx, d.ModelMatrix(), color)
}

// Pick intersects r with the duck's bounding sphere
func (d *Duck) Pick(r graphics.Ray) (float32, bool) {
	return r.HitSphere(d.Position, d.Radius)
}

// OnClick toggles the selection when r hits the duck. It runs outside the
// update pass, from the owner of the scene.
func (d *Duck) OnClick(h scene.Handle, r graphics.Ray) bool {
	if _, hit := d.Pick(r); !hit {
		return false
	}
	d.Selected = !d.Selected
	logging.Logger().Debug("duck clicked", "selected", d.Selected)
	return true
}
