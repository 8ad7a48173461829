package scene

import (
	"math"
	"testing"

	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted is a scripted entity that records what happens to it.
type scripted struct {
	name     string
	pos      mgl32.Vec3
	updates  int
	renders  int
	lastDT   float64
	onUpdate func(p *scripted, h Handle) bool
	trace    *[]string
}

func (p *scripted) Update(dt float64, h Handle) bool {
	p.updates++
	p.lastDT = dt
	if p.trace != nil {
		*p.trace = append(*p.trace, "update "+p.name)
	}
	if p.onUpdate != nil {
		return p.onUpdate(p, h)
	}
	return true
}

func (p *scripted) Render(ctx renderer.RenderContext) {
	p.renders++
	if p.trace != nil {
		*p.trace = append(*p.trace, "render "+p.name)
	}
}

func (p *scripted) WorldPosition() mgl32.Vec3 { return p.pos }

type clickable struct {
	scripted
	radius float32
}

func (c *clickable) Pick(r graphics.Ray) (float32, bool) {
	return r.HitSphere(c.pos, c.radius)
}

func names(s *Scene) []string {
	var out []string
	for _, e := range s.All() {
		switch p := e.(type) {
		case *scripted:
			out = append(out, p.name)
		case *clickable:
			out = append(out, p.name)
		}
	}
	return out
}

func renderCtx() renderer.RenderContext {
	return renderer.RenderContext{Camera: graphics.NewCamera(60, 1, 0.1, 100), Backend: &renderer.Recorder{}}
}

func TestSpawnAndExpireInOnePass(t *testing.T) {
	s := New()
	spawned := &scripted{name: "new"}
	e1 := &scripted{name: "e1"}
	e2 := &scripted{name: "e2", onUpdate: func(p *scripted, h Handle) bool {
		h.Spawn(spawned)
		return true
	}}
	e3 := &scripted{name: "e3", onUpdate: func(*scripted, Handle) bool { return false }}
	s.Add(e1)
	s.Add(e2)
	id3 := s.Add(e3)

	s.Update(0.016)

	assert.Equal(t, []string{"e1", "e2", "new"}, names(s))
	assert.Equal(t, 3, s.Len())
	assert.Zero(t, spawned.updates, "spawned entity must not be updated in its creation pass")
	_, ok := s.Lookup(id3)
	assert.False(t, ok)

	s.Render(renderCtx())
	assert.Equal(t, 1, spawned.renders, "spawned entity is rendered in its creation frame")
	assert.Zero(t, e3.renders)

	s.Update(0.016)
	assert.Equal(t, 1, spawned.updates)
	assert.Equal(t, 1, e3.updates, "expired entity is never updated again")
}

func TestUpdateVisitsEachEntityOnceInOrder(t *testing.T) {
	var trace []string
	s := New()
	for _, n := range []string{"a", "b", "c", "d"} {
		s.Add(&scripted{name: n, trace: &trace, onUpdate: func(p *scripted, h Handle) bool {
			// b and d expire; a spawns a child every frame
			if p.name == "a" {
				h.Spawn(&scripted{name: "a-child", trace: &trace})
			}
			return p.name != "b" && p.name != "d"
		}})
	}

	s.Update(1)
	assert.Equal(t, []string{"update a", "update b", "update c", "update d"}, trace)
	assert.Equal(t, []string{"a", "c", "a-child"}, names(s))

	trace = nil
	s.Update(1)
	assert.Equal(t, []string{"update a", "update c", "update a-child"}, trace)
	assert.Equal(t, []string{"a", "c", "a-child", "a-child"}, names(s))
}

func TestRenderCountMatchesLifecycleArithmetic(t *testing.T) {
	s := New()
	const alive = 10
	for i := range alive {
		s.Add(&scripted{onUpdate: func(p *scripted, h Handle) bool {
			if i%3 == 0 {
				h.Spawn(&scripted{})
				h.Spawn(&scripted{})
			}
			return i%2 == 0
		}})
	}
	// i in 0..9: expiring = odd (5), spawners = 0,3,6,9 each adding 2
	s.Update(0.5)

	ctx := renderCtx()
	rendered := 0
	s.Each(func(id ID, e Entity) bool {
		rendered++
		return true
	})
	s.Render(ctx)
	assert.Equal(t, alive-5+8, rendered)
	assert.Equal(t, alive-5+8, s.Len())
}

func TestRemovedEntityIsInvisibleLaterInPass(t *testing.T) {
	s := New()
	var seen []string
	victim := &scripted{name: "victim", onUpdate: func(*scripted, Handle) bool { return false }}
	observer := &scripted{name: "observer", onUpdate: func(p *scripted, h Handle) bool {
		h.Each(func(id ID, e Entity) bool {
			seen = append(seen, e.(*scripted).name)
			return true
		})
		return true
	}}
	first := &scripted{name: "first"}
	s.Add(first)
	victimID := s.Add(victim)
	s.Add(observer)
	pendingID := ID(0)
	first.onUpdate = func(p *scripted, h Handle) bool {
		pendingID = h.Spawn(&scripted{name: "pending"})
		return true
	}

	s.Update(1)

	assert.Equal(t, []string{"first", "observer"}, seen)
	_, ok := s.Lookup(victimID)
	assert.False(t, ok)
	e, ok := s.Lookup(pendingID)
	require.True(t, ok)
	assert.Equal(t, "pending", e.(*scripted).name)
}

func TestPanickingEntityEndsPass(t *testing.T) {
	s := New()
	spawner := &scripted{name: "spawner"}
	spawner.onUpdate = func(p *scripted, h Handle) bool {
		if p.updates == 1 {
			h.Spawn(&scripted{name: "spawned"})
		}
		return true
	}
	bad := &scripted{name: "bad", onUpdate: func(*scripted, Handle) bool { panic("boom") }}
	s.Add(spawner)
	s.Add(bad)

	assert.Panics(t, func() { s.Update(1) })
	assert.Equal(t, []string{"spawner", "bad", "spawned"}, names(s))

	// adds outside a pass land at once instead of in a stale pending buffer
	s.Add(&scripted{name: "late"})
	assert.Equal(t, []string{"spawner", "bad", "spawned", "late"}, names(s))
	assert.Equal(t, 4, s.Len())
}

func TestEachStopsEarly(t *testing.T) {
	s := New()
	for range 5 {
		s.Add(&scripted{})
	}
	visits := 0
	s.Each(func(ID, Entity) bool {
		visits++
		return visits < 2
	})
	assert.Equal(t, 2, visits)
}

func TestUpdateSanitizesDelta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.25, 0.25},
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		s := New()
		p := &scripted{}
		s.Add(p)
		s.Update(tt.in)
		assert.Equal(t, tt.want, p.lastDT, "dt %v", tt.in)
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	s := New()
	var trace []string
	s.Add(&scripted{name: "a", trace: &trace})
	s.Add(&scripted{name: "b", trace: &trace})

	s.Render(renderCtx())
	s.Render(renderCtx())

	assert.Equal(t, []string{"render a", "render b", "render a", "render b"}, trace)
	assert.Equal(t, 2, s.Len())
}

func TestIDsAreNotReused(t *testing.T) {
	s := New()
	id1 := s.Add(&scripted{onUpdate: func(*scripted, Handle) bool { return false }})
	s.Update(1)
	id2 := s.Add(&scripted{})

	assert.NotEqual(t, id1, id2)
	_, ok := s.Lookup(id1)
	assert.False(t, ok)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Entities())
	id3 := s.Add(&scripted{})
	assert.Greater(t, id3, id2)
}

func TestPickChoosesClosest(t *testing.T) {
	s := New()
	s.Add(&scripted{name: "plain", pos: mgl32.Vec3{0, 0, 2}})
	far := s.Add(&clickable{scripted: scripted{name: "far", pos: mgl32.Vec3{0, 0, 10}}, radius: 1})
	near := s.Add(&clickable{scripted: scripted{name: "near", pos: mgl32.Vec3{0, 0, 5}}, radius: 1})
	s.Add(&clickable{scripted: scripted{name: "off-axis", pos: mgl32.Vec3{4, 0, 3}}, radius: 1})

	id, c, ok := s.Pick(graphics.Ray{Origin: mgl32.Vec3{}, Dir: mgl32.Vec3{0, 0, 1}})
	require.True(t, ok)
	assert.Equal(t, near, id)
	assert.Equal(t, "near", c.(*clickable).name)
	assert.NotEqual(t, far, id)

	_, _, ok = s.Pick(graphics.Ray{Origin: mgl32.Vec3{}, Dir: mgl32.Vec3{0, 1, 0}})
	assert.False(t, ok)
}

func TestNearest(t *testing.T) {
	s := New()
	s.Add(&scripted{name: "p1", pos: mgl32.Vec3{10, 0, 0}})
	want := s.Add(&scripted{name: "p2", pos: mgl32.Vec3{2, 0, 0}})
	s.Add(&clickable{scripted: scripted{name: "c", pos: mgl32.Vec3{1, 0, 0}}})

	id, p, ok := Nearest[*scripted](s, mgl32.Vec3{})
	require.True(t, ok)
	assert.Equal(t, want, id)
	assert.Equal(t, "p2", p.name)

	_, _, ok = Nearest[*scripted](New(), mgl32.Vec3{})
	assert.False(t, ok)
}
