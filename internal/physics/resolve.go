package physics

import (
	"github.com/chewxy/math32"

	"artillery-engine/internal/gamemath"
)

// DefaultRestitution is the fraction of velocity kept when a dynamic body
// bounces off a static one.
const DefaultRestitution = 0.7

// Resolve corrects positions and velocities of one overlapping pair.
// Static-vs-static pairs never reach here (DetectAll skips them); a pair with
// exactly one static body is pushed out along the smaller-overlap axis with a
// restitution bounce, and two dynamic bodies exchange momentum elastically
// along the collision normal.
func Resolve(a, b *Body, info CollisionInfo, restitution float32) {
	if !info.HasCollision || (a.Static && b.Static) {
		return
	}
	switch {
	case b.Static:
		resolveAgainstStatic(a, b, info, restitution)
	case a.Static:
		// Symmetric case: the push direction comes from the body centers,
		// so only the roles swap.
		resolveAgainstStatic(b, a, info, restitution)
	default:
		resolveElastic(a, b, info)
	}
}

// resolveAgainstStatic pushes the dynamic body dyn out of the static body
// along whichever axis has the smaller penetration, then inverts the matching
// velocity component scaled by restitution to simulate the bounce.
func resolveAgainstStatic(dyn, stat *Body, info CollisionInfo, restitution float32) {
	if info.OverlapX < info.OverlapY {
		if dyn.Center().X < stat.Center().X {
			dyn.Position.X -= info.OverlapX
		} else {
			dyn.Position.X += info.OverlapX
		}
		dyn.Velocity.X = -dyn.Velocity.X * restitution
	} else {
		if dyn.Center().Y < stat.Center().Y {
			dyn.Position.Y -= info.OverlapY
		} else {
			dyn.Position.Y += info.OverlapY
		}
		dyn.Velocity.Y = -dyn.Velocity.Y * restitution
	}
}

// resolveElastic applies the 1D elastic collision equations along the
// collision normal and keeps the tangential velocity components untouched:
//
//	v1n' = (v1n(mA-mB) + 2·mB·v2n) / (mA+mB)
//	v2n' = (v2n(mB-mA) + 2·mA·v1n) / (mA+mB)
//
// Interpenetration is removed by shifting each body along the normal in
// proportion to the other body's mass share, so heavy bodies barely move.
func resolveElastic(a, b *Body, info CollisionInfo) {
	n := info.Normal
	t := n.Perp()

	v1n := a.Velocity.Dot(n)
	v1t := a.Velocity.Dot(t)
	v2n := b.Velocity.Dot(n)
	v2t := b.Velocity.Dot(t)

	total := a.Mass + b.Mass
	v1nAfter := (v1n*(a.Mass-b.Mass) + 2*b.Mass*v2n) / total
	v2nAfter := (v2n*(b.Mass-a.Mass) + 2*a.Mass*v1n) / total

	a.Velocity = n.Scale(v1nAfter).Add(t.Scale(v1t))
	b.Velocity = n.Scale(v2nAfter).Add(t.Scale(v2t))

	depth := math32.Min(info.OverlapX, info.OverlapY)
	a.Position = a.Position.Sub(n.Scale(depth * b.Mass / total))
	b.Position = b.Position.Add(n.Scale(depth * a.Mass / total))
}
