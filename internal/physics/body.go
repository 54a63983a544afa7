package physics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"artillery-engine/internal/gamemath"
)

// Kind tags a body with the concrete thing it simulates. Gameplay code
// dispatches on it exhaustively instead of probing for capabilities.
type Kind uint8

const (
	KindVehicle Kind = iota
	KindProjectile
	KindFragment
)

// String returns the lowercase name of the kind, for logs.
func (k Kind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindProjectile:
		return "projectile"
	case KindFragment:
		return "fragment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Body is a 2D rigid body with position, velocity, and an axis-aligned
// bounding box. Position is the top-left corner of the box. Static bodies
// never move: the integrator and resolver leave their position and velocity
// untouched.
type Body struct {
	ID       uuid.UUID
	Kind     Kind
	Position gamemath.Vec2
	Velocity gamemath.Vec2
	Mass     float32
	Static   bool
	Width    float32
	Height   float32

	// Sensor bodies are detected but never resolved: they pass through
	// other bodies while still reporting contacts. Shells use this so an
	// impact is decided by gameplay rules, not by a bounce.
	Sensor bool

	// faulted marks a body whose state went non-finite. The world stops
	// advancing it and reports an InvariantError; see World.Step.
	faulted bool
}

// NewBody returns a body at rest with the given box and mass. Mass must be
// strictly positive and the box must have positive extent; both are
// construction-time errors, never coerced.
func NewBody(kind Kind, position gamemath.Vec2, width, height, mass float32, static bool) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("physics: body mass must be > 0, got %v", mass)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("physics: body extent must be positive, got %vx%v", width, height)
	}
	if !position.IsFinite() {
		return nil, fmt.Errorf("physics: body position must be finite, got %v", position)
	}
	return &Body{
		ID:       uuid.New(),
		Kind:     kind,
		Position: position,
		Mass:     mass,
		Static:   static,
		Width:    width,
		Height:   height,
	}, nil
}

// Rect returns the body's bounding box as a raylib rectangle, used both by
// the broad-phase overlap gate and by the renderer.
func (b *Body) Rect() rl.Rectangle {
	return rl.NewRectangle(b.Position.X, b.Position.Y, b.Width, b.Height)
}

// Center returns the center point of the bounding box.
func (b *Body) Center() gamemath.Vec2 {
	return gamemath.Vec2{X: b.Position.X + b.Width/2, Y: b.Position.Y + b.Height/2}
}

// ContainsPoint reports whether p lies inside the body's bounding box.
func (b *Body) ContainsPoint(p gamemath.Vec2) bool {
	return p.X >= b.Position.X && p.X <= b.Position.X+b.Width &&
		p.Y >= b.Position.Y && p.Y <= b.Position.Y+b.Height
}

// Faulted reports whether the body has been quarantined after an invariant
// violation. A faulted body keeps its last state but is no longer integrated
// or resolved.
func (b *Body) Faulted() bool {
	return b.faulted
}

// checkState verifies position and velocity are finite. On violation the
// body is quarantined and a structured InvariantError is returned.
func (b *Body) checkState() error {
	if b.Position.IsFinite() && b.Velocity.IsFinite() {
		return nil
	}
	b.faulted = true
	return &InvariantError{
		BodyID: b.ID,
		Kind:   b.Kind,
		Detail: fmt.Sprintf("non-finite state: position=%v velocity=%v", b.Position, b.Velocity),
	}
}

// InvariantError reports a fatal internal invariant violation (NaN or Inf in
// body state). Silently continuing to integrate such state is disallowed;
// the world quarantines the body and surfaces this error from Step.
type InvariantError struct {
	BodyID uuid.UUID
	Kind   Kind
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("physics: invariant violation on %s %s: %s", e.Kind, e.BodyID, e.Detail)
}
