package physics

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"artillery-engine/internal/gamemath"
)

// World holds every simulated body and advances them one synchronous step at
// a time: gravity and velocity integration, then pairwise AABB detection,
// then resolution. It owns its bodies exclusively; external readers take
// Snapshot copies rather than live references across a step boundary.
type World struct {
	// Gravity is the downward acceleration applied to dynamic bodies, in
	// world units per step squared.
	Gravity float32
	// Restitution is the bounce factor used when resolving collisions
	// against static bodies.
	Restitution float32

	bodies []*Body
}

// NewWorld returns an empty world with the given gravity and restitution.
func NewWorld(gravity, restitution float32) *World {
	return &World{Gravity: gravity, Restitution: restitution}
}

// AddBody registers a body. A nil body, a mass <= 0, or a duplicate ID is a
// registration error; the integrator may then assume every registered mass is
// strictly positive and never divides by zero.
func (w *World) AddBody(b *Body) error {
	if b == nil {
		return errors.New("physics: cannot register nil body")
	}
	if b.Mass <= 0 {
		return fmt.Errorf("physics: cannot register body with mass %v", b.Mass)
	}
	for _, existing := range w.bodies {
		if existing.ID == b.ID {
			return fmt.Errorf("physics: body %s already registered", b.ID)
		}
	}
	w.bodies = append(w.bodies, b)
	return nil
}

// RemoveBody unregisters the body with the given ID, reporting whether it was
// present. The world holds no other reference: a removed body is gone.
func (w *World) RemoveBody(id uuid.UUID) bool {
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Body returns the registered body with the given ID, or nil.
func (w *World) Body(id uuid.UUID) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the registered bodies in insertion order. The slice is a
// copy but the pointers are live; only the simulation core may mutate them.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Snapshot returns deep copies of all bodies for rendering and UI. Mutating
// the snapshot has no effect on the simulation.
func (w *World) Snapshot() []Body {
	out := make([]Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		var c Body
		_ = copier.Copy(&c, b)
		// copier only reaches exported fields; the quarantine flag must
		// survive the copy so renderers can flag faulted bodies.
		c.faulted = b.faulted
		out = append(out, c)
	}
	return out
}

// ApplyForce accelerates a dynamic body by force/mass. Static and
// quarantined bodies are unaffected.
func (w *World) ApplyForce(b *Body, force gamemath.Vec2) {
	if b.Static || b.faulted {
		return
	}
	b.Velocity = b.Velocity.Add(force.Scale(1 / b.Mass))
}

// ApplyImpulse applies an instantaneous velocity delta of impulse/mass.
// The arithmetic matches ApplyForce; the distinction is semantic: an impulse
// is a one-shot momentum transfer, not a per-step force.
func (w *World) ApplyImpulse(b *Body, impulse gamemath.Vec2) {
	if b.Static || b.faulted {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// QueryPoint returns the first registered body whose bounding box contains p,
// or nil when the point is in open space.
func (w *World) QueryPoint(p gamemath.Vec2) *Body {
	for _, b := range w.bodies {
		if !b.faulted && b.ContainsPoint(p) {
			return b
		}
	}
	return nil
}

// Step advances the world by dt: integrate dynamic bodies under gravity,
// detect all overlapping pairs, resolve them, and verify state invariants.
// The returned contacts are the pairs that overlapped this step, before
// resolution, so callers can react to hits (e.g. projectile impacts).
//
// A body whose position or velocity turns NaN or Inf is quarantined: it stops
// advancing and Step reports an InvariantError for it. The rest of the world
// keeps simulating.
func (w *World) Step(dt float32) ([]Contact, error) {
	var errs []error

	for _, b := range w.bodies {
		if b.Static || b.faulted {
			continue
		}
		b.Velocity.Y += w.Gravity * dt
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		if err := b.checkState(); err != nil {
			errs = append(errs, err)
		}
	}

	contacts := DetectAll(w.bodies)
	for _, c := range contacts {
		if c.A.Sensor || c.B.Sensor {
			continue
		}
		Resolve(c.A, c.B, c.Info, w.Restitution)
		if err := c.A.checkState(); err != nil {
			errs = append(errs, err)
		}
		if err := c.B.checkState(); err != nil {
			errs = append(errs, err)
		}
	}

	return contacts, errors.Join(errs...)
}
