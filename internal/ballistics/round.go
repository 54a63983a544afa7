package ballistics

import (
	"fmt"

	"github.com/google/uuid"

	"artillery-engine/internal/gamemath"
	"artillery-engine/internal/physics"
)

// RoundKind selects the ballistic behavior of a fired shell.
type RoundKind uint8

const (
	// RoundStandard flies a plain ballistic arc and detonates on contact.
	RoundStandard RoundKind = iota
	// RoundFragmentation detonates into child shells at spread angles
	// around the impact velocity.
	RoundFragmentation
	// RoundGuided nudges its velocity toward Target each step by a bounded
	// turn rate while fuel remains.
	RoundGuided
)

func (k RoundKind) String() string {
	switch k {
	case RoundStandard:
		return "standard"
	case RoundFragmentation:
		return "fragmentation"
	case RoundGuided:
		return "guided"
	default:
		return fmt.Sprintf("round(%d)", uint8(k))
	}
}

// RoundSpec carries the per-shot ballistic parameters. The fields beyond
// Kind and BlastRadius only matter for the variant that reads them.
type RoundSpec struct {
	Kind        RoundKind
	BlastRadius float32

	// Fragmentation: number of children and total spread in degrees.
	FragmentCount  int
	FragmentSpread float32

	// Guided: steering target, per-step turn rate in [0,1], and fuel as a
	// countdown of steering steps.
	Target   gamemath.Vec2
	TurnRate float32
	Fuel     int
}

// StandardRound returns the default shell loadout.
func StandardRound() RoundSpec {
	return RoundSpec{Kind: RoundStandard, BlastRadius: 30}
}

// FragmentationRound returns a shell that splits into five children on
// detonation. Each child carves a smaller crater.
func FragmentationRound() RoundSpec {
	return RoundSpec{
		Kind:           RoundFragmentation,
		BlastRadius:    18,
		FragmentCount:  5,
		FragmentSpread: 60,
	}
}

// GuidedRound returns a shell that steers toward target until its fuel runs
// out, after which it flies ballistically.
func GuidedRound(target gamemath.Vec2) RoundSpec {
	return RoundSpec{
		Kind:        RoundGuided,
		BlastRadius: 24,
		Target:      target,
		TurnRate:    0.08,
		Fuel:        90,
	}
}

// Projectile is a live shell: a dynamic physics body plus the ballistic
// state the generic body contract doesn't carry. Kinematic state lives on
// the body itself and nowhere else. A projectile is terminal: once retired
// it is removed from the world and never reused.
type Projectile struct {
	Body  *physics.Body
	Owner uuid.UUID
	Spec  RoundSpec

	age     int
	retired bool
}

// steer turns a guided projectile's velocity toward its target by the
// bounded per-step turn rate, preserving speed. Fuel is spent one unit per
// steering step; everything else is a no-op.
func (p *Projectile) steer() {
	if p.Spec.Kind != RoundGuided || p.Spec.Fuel <= 0 {
		return
	}
	speed := p.Body.Velocity.Length()
	if speed == 0 {
		return
	}
	cur := p.Body.Velocity.Scale(1 / speed)
	want := p.Spec.Target.Sub(p.Body.Center()).Normalize()
	if want == (gamemath.Vec2{}) {
		return
	}
	dir := cur.Add(want.Sub(cur).Scale(p.Spec.TurnRate)).Normalize()
	if dir == (gamemath.Vec2{}) {
		return
	}
	p.Body.Velocity = dir.Scale(speed)
	p.Spec.Fuel--
}
