package terrain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"artillery-engine/internal/gamemath"
)

// Options controls heightmap generation. Width is the number of columns (one
// height sample per integer x). BaseHeight is the mean surface level and
// Amplitude the noise swing around it, both in world units. WorldBottom is
// the lower world bound; anything past it counts as ground no matter what
// (catches bodies that fell through). Seed == 0 uses a time-based seed.
type Options struct {
	Width       int
	BaseHeight  float32
	Amplitude   float32
	WorldBottom float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32

	// SmoothWindow is the moving-average window applied after noise
	// sampling to remove high-frequency jaggedness.
	SmoothWindow int
	// PlatformWidth is the approximate width of the flat segments carved
	// into the surface as vehicle spawn/landing zones.
	PlatformWidth int
}

// DefaultOptions returns a sane default configuration for an 800-column map.
func DefaultOptions() Options {
	return Options{
		Width:         800,
		BaseHeight:    400,
		Amplitude:     120,
		WorldBottom:   600,
		Seed:          0,
		Octaves:       4,
		Frequency:     0.01,
		Lacunarity:    2.0,
		Gain:          0.5,
		SmoothWindow:  5,
		PlatformWidth: 50,
	}
}

// normalize fills non-positive tuning fields with defaults. Width is not
// normalized: it is validated at construction instead.
func (o *Options) normalize() {
	d := DefaultOptions()
	if o.BaseHeight <= 0 {
		o.BaseHeight = d.BaseHeight
	}
	if o.Amplitude <= 0 {
		o.Amplitude = d.Amplitude
	}
	if o.WorldBottom <= 0 {
		o.WorldBottom = d.WorldBottom
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.SmoothWindow <= 0 {
		o.SmoothWindow = d.SmoothWindow
	}
	if o.PlatformWidth <= 0 {
		o.PlatformWidth = d.PlatformWidth
	}
}

// Terrain is a destructible 1D heightmap: one surface height per integer
// x-column. It starts empty, Generate moves it to a generated surface, and
// DestroyAt deforms it in place. Regenerate discards all deformation with a
// fresh seed. A point collides where y >= HeightAt(x); carving only ever
// lowers stored heights, never raises them (regeneration excepted).
type Terrain struct {
	opts    Options
	heights []float32
	rng     *rand.Rand
}

// New returns an empty terrain. A non-positive width is a construction
// error; call Generate to produce the first surface.
func New(opts Options) (*Terrain, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("terrain: width must be > 0, got %d", opts.Width)
	}
	opts.normalize()
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Terrain{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// Width returns the number of columns.
func (t *Terrain) Width() int {
	return t.opts.Width
}

// Generated reports whether a surface exists (Generate ran since the last
// Clear).
func (t *Terrain) Generated() bool {
	return t.heights != nil
}

// Generate produces one height sample per column from coherent fractal
// noise scaled to [BaseHeight-Amplitude, BaseHeight+Amplitude], smooths the
// result with a moving average, and flattens a few platform segments that
// serve as vehicle spawn zones. Any previous surface is discarded.
func (t *Terrain) Generate() {
	o := t.opts
	heights := make([]float32, o.Width)
	// Second noise coordinate varies with seed so regenerated maps walk a
	// different slice of the same noise field.
	row := float32(t.rng.Int31n(4096))
	for x := range heights {
		n := fractalValueNoise2D(float32(x)*o.Frequency, row, o.Seed, o.Octaves, o.Lacunarity, o.Gain)
		heights[x] = o.BaseHeight - o.Amplitude + n*2*o.Amplitude
	}
	t.heights = smooth(heights, o.SmoothWindow)
	t.carvePlatforms()
}

// Regenerate produces a fresh surface under a new random seed, discarding all
// prior deformation.
func (t *Terrain) Regenerate() {
	t.opts.Seed = t.rng.Int63()
	if t.opts.Seed == 0 {
		t.opts.Seed = 1
	}
	t.Generate()
}

// LoadHeights replaces the surface wholesale with the given samples, one per
// column. Like regeneration, this discards any deformation; unlike Generate
// it is deterministic, which replays and fixtures rely on.
func (t *Terrain) LoadHeights(heights []float32) error {
	if len(heights) != t.opts.Width {
		return fmt.Errorf("terrain: want %d height samples, got %d", t.opts.Width, len(heights))
	}
	t.heights = make([]float32, len(heights))
	copy(t.heights, heights)
	return nil
}

// Clear discards the surface, returning the terrain to its empty state.
func (t *Terrain) Clear() {
	t.heights = nil
}

// smooth applies a centered moving average of the given window size.
func smooth(heights []float32, window int) []float32 {
	half := window / 2
	out := make([]float32, len(heights))
	for i := range heights {
		var sum float32
		var n int
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(heights) {
				continue
			}
			sum += heights[j]
			n++
		}
		out[i] = sum / float32(n)
	}
	return out
}

// carvePlatforms overwrites 3-5 contiguous runs with a single height value
// each, producing flat segments that vehicles can spawn and land on.
func (t *Terrain) carvePlatforms() {
	count := 3 + t.rng.Intn(3)
	for p := 0; p < count; p++ {
		width := t.opts.PlatformWidth + t.rng.Intn(t.opts.PlatformWidth/5+1) - t.opts.PlatformWidth/10
		if width < 2 {
			width = 2
		}
		if width >= t.opts.Width {
			width = t.opts.Width
		}
		start := t.rng.Intn(t.opts.Width - width + 1)
		level := t.heights[start]
		for i := start; i < start+width; i++ {
			t.heights[i] = level
		}
	}
}

// HeightAt returns the surface height of the column nearest x. x is clamped
// to [0, width-1], so every finite x has a defined height. On an empty
// terrain it returns WorldBottom (no surface above the floor).
func (t *Terrain) HeightAt(x float32) float32 {
	if t.heights == nil {
		return t.opts.WorldBottom
	}
	i := int(x + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(t.heights) {
		i = len(t.heights) - 1
	}
	return t.heights[i]
}

// Collides reports whether the circle at (x, y) with the given radius touches
// terrain. A radius <= 1 degenerates to the point test y >= HeightAt(x).
// Larger radii test the center point first (a circle whose center is under
// the surface collides no matter how deep), then each column in
// [x-radius, x+radius] against the Euclidean distance to that column's
// surface point. Horizontal out-of-bounds is open space, not a wall; anything
// below the world bottom always collides.
func (t *Terrain) Collides(x, y, radius float32) bool {
	if y >= t.opts.WorldBottom {
		return true
	}
	inBounds := x >= 0 && x <= float32(t.opts.Width-1)
	if radius <= 1 {
		return inBounds && y >= t.HeightAt(x)
	}
	if inBounds && y >= t.HeightAt(x) {
		return true
	}
	lo := int(math32.Ceil(x - radius))
	hi := int(math32.Floor(x + radius))
	for i := lo; i <= hi; i++ {
		if i < 0 || i >= t.opts.Width {
			continue
		}
		surface := gamemath.Vec2{X: float32(i), Y: t.HeightAt(float32(i))}
		if surface.Distance(gamemath.Vec2{X: x, Y: y}) < radius {
			return true
		}
	}
	return false
}

// DestroyAt carves a circular crater of the given radius centered at
// (cx, cy). Each column inside the horizontal radius is lowered to at most
// cy - sqrt(radius² - dx²); columns outside it (where the root would be
// imaginary) are untouched. Heights only ever decrease, so repeating the
// identical call changes nothing.
func (t *Terrain) DestroyAt(cx, cy, radius float32) {
	if t.heights == nil || radius <= 0 {
		return
	}
	lo := int(math32.Ceil(cx - radius))
	hi := int(math32.Floor(cx + radius))
	for i := lo; i <= hi; i++ {
		if i < 0 || i >= len(t.heights) {
			continue
		}
		dx := float32(i) - cx
		under := radius*radius - dx*dx
		if under < 0 {
			continue
		}
		carved := cy - math32.Sqrt(under)
		if carved < t.heights[i] {
			t.heights[i] = carved
		}
	}
}

// Snapshot returns a copy of the height array for rendering. Mutating it has
// no effect on the terrain.
func (t *Terrain) Snapshot() []float32 {
	out := make([]float32, len(t.heights))
	copy(out, t.heights)
	return out
}

// FindSuitablePositions samples random columns and keeps those farther than
// minDistance from every previously kept one, returning surface points
// (x, HeightAt(x)). The attempt budget is count*5; when it runs out the
// result is simply shorter than requested, and the caller must check the
// length rather than treat it as an error.
func (t *Terrain) FindSuitablePositions(count int, minDistance float32) []gamemath.Vec2 {
	if count <= 0 || t.heights == nil {
		return nil
	}
	positions := make([]gamemath.Vec2, 0, count)
	for attempts := count * 5; attempts > 0 && len(positions) < count; attempts-- {
		x := float32(t.rng.Intn(t.opts.Width))
		ok := true
		for _, p := range positions {
			if math32.Abs(p.X-x) <= minDistance {
				ok = false
				break
			}
		}
		if ok {
			positions = append(positions, gamemath.Vec2{X: x, Y: t.HeightAt(x)})
		}
	}
	return positions
}
