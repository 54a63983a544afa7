package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"artillery-engine/internal/gamemath"
)

// fallbackNormal is used when two body centers coincide exactly and no
// direction can be derived; pointing up keeps stacked spawns separable.
var fallbackNormal = gamemath.Vec2{X: 0, Y: -1}

// CollisionInfo describes one overlapping pair for a single step. It is
// recomputed every step and never persisted.
type CollisionInfo struct {
	HasCollision bool
	// OverlapX and OverlapY are the minimum penetration distance per axis,
	// both >= 0 when HasCollision is true.
	OverlapX float32
	OverlapY float32
	// Normal is the unit vector from a's center toward b's center.
	Normal gamemath.Vec2
}

// Contact pairs two overlapping bodies with their collision info, as
// produced by DetectAll and consumed by Resolve.
type Contact struct {
	A    *Body
	B    *Body
	Info CollisionInfo
}

// Detect runs the AABB overlap test between a and b. When the boxes overlap
// it fills per-axis penetration depths and the center-to-center unit normal;
// coincident centers fall back to a fixed upward normal rather than dividing
// by zero.
func Detect(a, b *Body) CollisionInfo {
	if !rl.CheckCollisionRecs(a.Rect(), b.Rect()) {
		return CollisionInfo{}
	}

	overlapX := math32.Min(a.Position.X+a.Width-b.Position.X, b.Position.X+b.Width-a.Position.X)
	overlapY := math32.Min(a.Position.Y+a.Height-b.Position.Y, b.Position.Y+b.Height-a.Position.Y)

	normal := b.Center().Sub(a.Center()).Normalize()
	if normal == (gamemath.Vec2{}) {
		normal = fallbackNormal
	}

	return CollisionInfo{
		HasCollision: true,
		OverlapX:     overlapX,
		OverlapY:     overlapY,
		Normal:       normal,
	}
}

// DetectAll scans every body pair and returns the overlapping ones.
// Pairs where both bodies are static are skipped (neither can move), as are
// pairs involving a quarantined body. The scan is O(n²), fine for the few
// tens of bodies a match holds; a spatial index could replace it without
// changing the contract.
func DetectAll(bodies []*Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if a.faulted {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if b.faulted || (a.Static && b.Static) {
				continue
			}
			if info := Detect(a, b); info.HasCollision {
				contacts = append(contacts, Contact{A: a, B: b, Info: info})
			}
		}
	}
	return contacts
}
