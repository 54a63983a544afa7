package ballistics

import (
	"artillery-engine/internal/gamemath"
	"artillery-engine/internal/terrain"
)

// Predict forward-integrates a ballistic point under constant gravity and a
// horizontal wind acceleration, returning the visited points in order. The
// path ends at the first point that touches terrain, leaves the world
// horizontally, or after maxSteps. The terrain is only queried, never
// mutated, so the same snapshot of wind and gravity can be predicted any
// number of times per frame. This is what the aiming guide draws.
func Predict(terr *terrain.Terrain, gravity, windAccel, dt float32, start, velocity gamemath.Vec2, maxSteps int) []gamemath.Vec2 {
	pos := start
	vel := velocity
	points := make([]gamemath.Vec2, 0, maxSteps)

	for step := 0; step < maxSteps; step++ {
		vel.Y += gravity * dt
		vel.X += windAccel * dt
		pos = pos.Add(vel.Scale(dt))
		points = append(points, pos)

		if terr.Collides(pos.X, pos.Y, 1) {
			break
		}
		if pos.X < -predictMargin || pos.X > float32(terr.Width()-1)+predictMargin {
			break
		}
	}
	return points
}

// predictMargin lets a predicted arc leave the visible world a little before
// the preview gives up; shells can re-enter on the way down.
const predictMargin = 200
