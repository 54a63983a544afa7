package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artillery-engine/internal/gamemath"
)

func TestResolveStaticNeverMoves(t *testing.T) {
	floor := mustBody(t, KindVehicle, 0, 100, 200, 20, 100, true)
	ball := mustBody(t, KindProjectile, 50, 95, 10, 10, 1, false)
	ball.Velocity = gamemath.Vec2{X: 0, Y: 4}

	floorPos := floor.Position
	info := Detect(ball, floor)
	require.True(t, info.HasCollision)
	before := math32.Min(info.OverlapX, info.OverlapY)

	Resolve(ball, floor, info, DefaultRestitution)

	assert.Equal(t, floorPos, floor.Position, "static body must not move")
	assert.Equal(t, gamemath.Vec2{}, floor.Velocity)

	after := Detect(ball, floor)
	if after.HasCollision {
		assert.LessOrEqual(t, math32.Min(after.OverlapX, after.OverlapY), before,
			"resolution must not increase penetration")
	}
	// Bounce: vertical velocity inverted and scaled by restitution.
	assert.InDelta(t, -4*DefaultRestitution, ball.Velocity.Y, 1e-5)
}

func TestResolveStaticSymmetricArgumentOrder(t *testing.T) {
	floor := mustBody(t, KindVehicle, 0, 100, 200, 20, 100, true)
	ball := mustBody(t, KindProjectile, 50, 95, 10, 10, 1, false)
	ball.Velocity = gamemath.Vec2{X: 0, Y: 4}

	// Same pair, static first: roles must swap, not break.
	info := Detect(floor, ball)
	Resolve(floor, ball, info, DefaultRestitution)

	assert.Equal(t, gamemath.Vec2{X: 0, Y: 100}, floor.Position)
	assert.Less(t, ball.Position.Y+ball.Height, float32(100.01), "ball pushed out of the floor")
}

func TestResolveElasticConservesMomentum(t *testing.T) {
	a := mustBody(t, KindVehicle, 0, 0, 10, 10, 3, false)
	b := mustBody(t, KindVehicle, 8, 0, 10, 10, 7, false)
	a.Velocity = gamemath.Vec2{X: 4, Y: 1}
	b.Velocity = gamemath.Vec2{X: -2, Y: 0.5}

	momentumBefore := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))

	info := Detect(a, b)
	require.True(t, info.HasCollision)
	Resolve(a, b, info, DefaultRestitution)

	momentumAfter := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))
	assert.InDelta(t, momentumBefore.X, momentumAfter.X, 1e-3)
	assert.InDelta(t, momentumBefore.Y, momentumAfter.Y, 1e-3)
}

func TestResolveEqualMassHeadOnSwapsVelocities(t *testing.T) {
	a := mustBody(t, KindVehicle, 0, 0, 10, 10, 10, false)
	b := mustBody(t, KindVehicle, 8, 0, 10, 10, 10, false)
	a.Velocity = gamemath.Vec2{X: 5, Y: 0}
	b.Velocity = gamemath.Vec2{X: -5, Y: 0}

	info := Detect(a, b)
	require.True(t, info.HasCollision)
	Resolve(a, b, info, DefaultRestitution)

	assert.InDelta(t, -5, a.Velocity.X, 1e-4)
	assert.InDelta(t, 5, b.Velocity.X, 1e-4)
	assert.InDelta(t, 0, a.Velocity.Y, 1e-4)
	assert.InDelta(t, 0, b.Velocity.Y, 1e-4)
}

func TestResolveElasticSeparatesByMassShare(t *testing.T) {
	light := mustBody(t, KindVehicle, 0, 0, 10, 10, 1, false)
	heavy := mustBody(t, KindVehicle, 8, 0, 10, 10, 99, false)

	lightBefore := light.Position
	heavyBefore := heavy.Position
	info := Detect(light, heavy)
	Resolve(light, heavy, info, DefaultRestitution)

	lightMoved := light.Position.Distance(lightBefore)
	heavyMoved := heavy.Position.Distance(heavyBefore)
	assert.Greater(t, lightMoved, heavyMoved, "the light body absorbs most of the separation")
}
