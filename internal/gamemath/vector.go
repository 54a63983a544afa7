package gamemath

import (
	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector in world units. X grows right, Y grows down (screen
// convention, matching the heightmap and renderer).
type Vec2 struct {
	X float32
	Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by scalar s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean magnitude of v.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// LengthSq returns the squared magnitude, avoiding the sqrt when only
// comparisons are needed.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector pointing in the direction of v.
// The zero vector normalizes to the zero vector; callers that need a
// direction must supply their own fallback.
func (v Vec2) Normalize() Vec2 {
	mag := v.Length()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float32 {
	return o.Sub(v).Length()
}

// Perp returns v rotated 90 degrees counter-clockwise. Used to split a
// velocity into normal and tangential components during collision response.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// IsFinite reports whether both components are finite (no NaN, no Inf).
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Clamp limits x to the inclusive range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates from a to b by t (not clamped).
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float32) float32 {
	return rad * 180 / math32.Pi
}
