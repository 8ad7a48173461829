package scene

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"

	"mini-scene/internal/graphics"
	"mini-scene/internal/graphics/renderer"
	"mini-scene/internal/logging"
	"mini-scene/internal/profiling"

	"github.com/kamstrup/intmap"
)

// ID identifies an entity for as long as it is alive. IDs are never reused,
// so holding one is a weak reference: Lookup fails once the entity is gone.
type ID uint64

// Entity is a unit of per-frame simulation and rendering.
type Entity interface {
	// Update advances the entity by dt seconds and reports whether it stays
	// in the scene. It may spawn entities through h but must not mutate others.
	Update(dt float64, h Handle) bool
	// Render draws the entity. It must not change simulation state.
	Render(ctx renderer.RenderContext)
}

// Handle is the view of the scene an entity gets during its update.
type Handle interface {
	// Spawn appends e. During an update pass e is first updated next frame
	// but is rendered this frame.
	Spawn(e Entity) ID
	// Each visits live entities in order until fn returns false.
	// Entities spawned during the current pass are not visited.
	Each(fn func(id ID, e Entity) bool)
	// Lookup resolves a weak reference. Pending spawns resolve too.
	Lookup(id ID) (Entity, bool)
}

// Clickable entities take part in pointer picking.
type Clickable interface {
	Entity
	Pick(r graphics.Ray) (dist float32, hit bool)
}

type slot struct {
	id      ID
	e       Entity
	removed bool
}

// Scene is the ordered, exclusively owned collection of live entities.
// Insertion order is update and render order. Not safe for concurrent use:
// the frame loop drives it from a single goroutine.
type Scene struct {
	slots    []slot
	pending  []slot
	index    *intmap.Map[ID, Entity]
	nextID   ID
	updating bool
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		index: intmap.New[ID, Entity](256),
	}
}

// Add appends e and returns its ID. Called during an update pass (through
// the Handle) the entity is buffered and committed when the pass ends.
func (s *Scene) Add(e Entity) ID {
	s.nextID++
	sl := slot{id: s.nextID, e: e}
	s.index.Put(sl.id, e)
	if s.updating {
		s.pending = append(s.pending, sl)
	} else {
		s.slots = append(s.slots, sl)
	}
	return sl.id
}

// Spawn implements Handle.
func (s *Scene) Spawn(e Entity) ID {
	return s.Add(e)
}

// Update runs one update pass. Every entity present when the pass starts is
// updated exactly once, in order. An entity returning false is dropped at
// once: later entities in the same pass no longer see it. Survivors keep their
// relative order and spawned entities are appended after them.
func (s *Scene) Update(dt float64) {
	defer profiling.Track("scene.Update")()
	dt = SanitizeDelta(dt)

	log := logging.Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)

	s.updating = true
	// a panicking entity still leaves the scene consistent for the caller
	defer s.endPass()

	// s.slots is not appended to while updating, so indices stay valid
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.e.Update(dt, s) {
			continue
		}
		sl.removed = true
		s.index.Del(sl.id)
		if debug {
			log.Debug("entity expired", "id", sl.id, "type", fmt.Sprintf("%T", sl.e))
		}
	}
}

func (s *Scene) endPass() {
	s.updating = false
	s.commit()
}

// commit compacts removed slots away and appends pending spawns.
func (s *Scene) commit() {
	w := 0
	for _, sl := range s.slots {
		if !sl.removed {
			s.slots[w] = sl
			w++
		}
	}
	clear(s.slots[w:])
	s.slots = s.slots[:w]

	s.slots = append(s.slots, s.pending...)
	clear(s.pending)
	s.pending = s.pending[:0]
}

// Render draws every live entity in order.
func (s *Scene) Render(ctx renderer.RenderContext) {
	defer profiling.Track("scene.Render")()
	for _, sl := range s.slots {
		sl.e.Render(ctx)
	}
}

// All iterates live entities in order.
func (s *Scene) All() iter.Seq2[ID, Entity] {
	return func(yield func(ID, Entity) bool) {
		for _, sl := range s.slots {
			if sl.removed {
				continue
			}
			if !yield(sl.id, sl.e) {
				return
			}
		}
	}
}

// Each implements Handle.
func (s *Scene) Each(fn func(id ID, e Entity) bool) {
	for id, e := range s.All() {
		if !fn(id, e) {
			return
		}
	}
}

// Lookup implements Handle.
func (s *Scene) Lookup(id ID) (Entity, bool) {
	return s.index.Get(id)
}

// Len returns the number of live entities, pending spawns included.
func (s *Scene) Len() int {
	return s.index.Len()
}

// Entities returns a copy of the live entities in order.
func (s *Scene) Entities() []Entity {
	out := make([]Entity, 0, len(s.slots))
	for _, e := range s.All() {
		out = append(out, e)
	}
	return out
}

// Pick returns the closest Clickable entity hit by r.
func (s *Scene) Pick(r graphics.Ray) (ID, Clickable, bool) {
	var (
		bestID   ID
		best     Clickable
		bestDist = float32(math.MaxFloat32)
	)
	for id, e := range s.All() {
		c, ok := e.(Clickable)
		if !ok {
			continue
		}
		if d, hit := c.Pick(r); hit && d < bestDist {
			bestID, best, bestDist = id, c, d
		}
	}
	return bestID, best, best != nil
}

// Clear drops every entity. IDs keep increasing.
func (s *Scene) Clear() {
	clear(s.slots)
	s.slots = s.slots[:0]
	clear(s.pending)
	s.pending = s.pending[:0]
	s.index.Clear()
}

// SanitizeDelta clamps negative or non-finite frame deltas to zero.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}
