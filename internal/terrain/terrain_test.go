package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chewxy/math32"
)

// flatTerrain returns a width-column terrain with every height set to level.
func flatTerrain(t *testing.T, width int, level float32) *Terrain {
	t.Helper()
	opts := DefaultOptions()
	opts.Width = width
	opts.Seed = 1
	terr, err := New(opts)
	require.NoError(t, err)
	heights := make([]float32, width)
	for i := range heights {
		heights[i] = level
	}
	require.NoError(t, terr.LoadHeights(heights))
	return terr
}

func TestNewRejectsNonPositiveWidth(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	_, err := New(opts)
	assert.Error(t, err)

	opts.Width = -10
	_, err = New(opts)
	assert.Error(t, err)
}

func TestGenerateCoversEveryColumnWithinBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 800
	opts.Seed = 42
	terr, err := New(opts)
	require.NoError(t, err)

	assert.False(t, terr.Generated())
	terr.Generate()
	require.True(t, terr.Generated())

	snap := terr.Snapshot()
	require.Len(t, snap, 800)
	lo := opts.BaseHeight - opts.Amplitude
	hi := opts.BaseHeight + opts.Amplitude
	for x, h := range snap {
		require.False(t, math32.IsNaN(h) || math32.IsInf(h, 0), "column %d is not finite", x)
		require.GreaterOrEqual(t, h, lo, "column %d below range", x)
		require.LessOrEqual(t, h, hi, "column %d above range", x)
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 200
	opts.Seed = 7

	a, err := New(opts)
	require.NoError(t, err)
	a.Generate()
	b, err := New(opts)
	require.NoError(t, err)
	b.Generate()

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestRegenerateDiscardsDeformation(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 200
	opts.Seed = 7
	terr, err := New(opts)
	require.NoError(t, err)
	terr.Generate()

	before := terr.Snapshot()
	terr.DestroyAt(100, terr.HeightAt(100), 30)
	assert.NotEqual(t, before, terr.Snapshot())

	terr.Regenerate()
	after := terr.Snapshot()
	require.Len(t, after, 200)
	assert.NotEqual(t, before, after, "fresh seed walks a different noise slice")
}

func TestHeightAtClampsAndHandlesEmpty(t *testing.T) {
	terr := flatTerrain(t, 100, 350)

	assert.InDelta(t, 350, terr.HeightAt(50), 1e-6)
	assert.InDelta(t, 350, terr.HeightAt(-25), 1e-6, "left of the map clamps to column 0")
	assert.InDelta(t, 350, terr.HeightAt(500), 1e-6, "right of the map clamps to the last column")

	terr.Clear()
	assert.False(t, terr.Generated())
	assert.InDelta(t, terr.opts.WorldBottom, terr.HeightAt(50), 1e-6, "empty terrain is all floor")
}

func TestLoadHeightsLengthAndDetachment(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 10
	opts.Seed = 1
	terr, err := New(opts)
	require.NoError(t, err)

	assert.Error(t, terr.LoadHeights(make([]float32, 9)))
	assert.Error(t, terr.LoadHeights(make([]float32, 11)))

	src := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	require.NoError(t, terr.LoadHeights(src))
	src[0] = 999
	assert.InDelta(t, 1, terr.HeightAt(0), 1e-6, "loaded samples are copied, not aliased")
}

func TestDestroyAtCarvesCircularCrater(t *testing.T) {
	terr := flatTerrain(t, 800, 400)

	terr.DestroyAt(400, 400, 30)

	// Deepest at the center: 400 - sqrt(30²) = 370.
	assert.InDelta(t, 370, terr.HeightAt(400), 1e-4)
	// Circular profile inside the radius.
	for dx := float32(-29); dx <= 29; dx++ {
		want := 400 - math32.Sqrt(30*30-dx*dx)
		assert.InDelta(t, want, terr.HeightAt(400+dx), 1e-4, "dx=%v", dx)
	}
	// Untouched outside the radius.
	assert.InDelta(t, 400, terr.HeightAt(369), 1e-6)
	assert.InDelta(t, 400, terr.HeightAt(431), 1e-6)
}

func TestDestroyAtOnlyEverLowers(t *testing.T) {
	terr := flatTerrain(t, 800, 400)
	terr.DestroyAt(400, 400, 30)
	carved := terr.Snapshot()

	// The identical blast changes nothing.
	terr.DestroyAt(400, 400, 30)
	assert.Equal(t, carved, terr.Snapshot())

	// A blast centered below the surface cannot raise it back.
	terr.DestroyAt(400, 500, 30)
	for x, h := range terr.Snapshot() {
		require.LessOrEqual(t, h, carved[x], "column %d raised", x)
	}
}

func TestDestroyAtClipsToMapEdges(t *testing.T) {
	terr := flatTerrain(t, 100, 400)

	// Centered off the left edge; only the overlapping columns change.
	terr.DestroyAt(-10, 400, 20)
	assert.Less(t, terr.HeightAt(0), float32(400))
	assert.InDelta(t, 400, terr.HeightAt(50), 1e-6)

	// Zero and negative radii are no-ops.
	snap := terr.Snapshot()
	terr.DestroyAt(50, 400, 0)
	terr.DestroyAt(50, 400, -5)
	assert.Equal(t, snap, terr.Snapshot())
}

func TestCollidesPointTest(t *testing.T) {
	terr := flatTerrain(t, 800, 400)

	assert.False(t, terr.Collides(100, 399, 1), "just above the surface")
	assert.True(t, terr.Collides(100, 400, 1), "exactly on the surface")
	assert.True(t, terr.Collides(100, 450, 1), "below the surface")

	assert.False(t, terr.Collides(-10, 400, 1), "horizontal out of bounds is open space")
	assert.False(t, terr.Collides(900, 400, 1))

	assert.True(t, terr.Collides(-10, 600, 1), "the world bottom collides everywhere")
	assert.True(t, terr.Collides(900, 700, 1))
}

func TestCollidesCircleTest(t *testing.T) {
	terr := flatTerrain(t, 800, 400)

	assert.False(t, terr.Collides(100, 380, 10), "circle hovering clear of the surface")
	assert.True(t, terr.Collides(100, 395, 10), "circle dipping into the surface")
	assert.True(t, terr.Collides(100, 420, 10), "circle buried in terrain")
	assert.True(t, terr.Collides(100, 480, 10), "circle deeper than its own radius still collides")
	assert.False(t, terr.Collides(-50, 420, 10), "out of bounds stays open space even below surface level")
}

func TestFindSuitablePositionsSpacing(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 800
	opts.Seed = 3
	terr, err := New(opts)
	require.NoError(t, err)
	terr.Generate()

	positions := terr.FindSuitablePositions(2, 200)
	require.Len(t, positions, 2)
	assert.Greater(t, math32.Abs(positions[0].X-positions[1].X), float32(200))
	for _, p := range positions {
		assert.InDelta(t, terr.HeightAt(p.X), p.Y, 1e-6, "position sits on the surface")
	}
}

func TestFindSuitablePositionsShortfall(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 100
	opts.Seed = 3
	terr, err := New(opts)
	require.NoError(t, err)
	terr.Generate()

	// 100 columns cannot host 10 points all more than 300 apart; the result
	// is short, not an error.
	positions := terr.FindSuitablePositions(10, 300)
	assert.Less(t, len(positions), 10)

	assert.Nil(t, terr.FindSuitablePositions(0, 10))
	terr.Clear()
	assert.Nil(t, terr.FindSuitablePositions(2, 10))
}
