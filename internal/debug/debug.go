package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to
	// reduce allocations.
	updateInterval = 30
)

// Overlay draws simulation diagnostics (FPS, body count, step faults) in the
// top-right corner. Hidden by default; the demo toggles it with F3.
type Overlay struct {
	Show bool

	frameCount  uint32
	bodyCount   int
	faultCount  int
	lastFpsText string
	lastSimText string
}

// New returns a hidden overlay.
func New() *Overlay {
	return &Overlay{}
}

// Toggle flips overlay visibility.
func (o *Overlay) Toggle() {
	o.Show = !o.Show
}

// SetStats records the body and fault counters shown next frame.
func (o *Overlay) SetStats(bodies, faults int) {
	o.bodyCount = bodies
	o.faultCount = faults
}

// Draw renders the overlay when visible. Call last in the draw loop so it
// sits on top. Text is recomputed every updateInterval frames.
func (o *Overlay) Draw() {
	if !o.Show {
		return
	}
	o.frameCount++
	if o.frameCount%updateInterval == 0 || o.lastFpsText == "" {
		o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		o.lastSimText = fmt.Sprintf("bodies: %d  faults: %d", o.bodyCount, o.faultCount)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range []string{o.lastFpsText, o.lastSimText} {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
