package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/physics"
)

// Tunnel generates and scrolls the cave. It is built from one-cell slices
// produced in chunks: each chunk picks a new centre line and the passage
// drifts towards it by at most maxSlope cells per slice.
type Tunnel struct {
	slices []physics.TunnelSlice

	top, bottom float64 // the passage always stays between these rows
	maxSlope    float64
	chunk       int

	center float64
	gap    float64
	target float64
	left   int // slices left in the current chunk
}

// newTunnel creates an empty tunnel between top and bottom. The first chunk
// runs straight through the middle.
func newTunnel(top, bottom, gap, maxSlope float64, chunk int) *Tunnel {
	t := &Tunnel{
		slices:   make([]physics.TunnelSlice, 0, 128),
		top:      top,
		bottom:   bottom,
		maxSlope: math.Max(maxSlope, 0),
		chunk:    max(chunk, 1),
		gap:      math.Min(gap, bottom-top),
	}
	t.center = (top + bottom) / 2
	t.target = t.center
	t.left = t.chunk
	return t
}

// Slices returns the live slices, left to right.
func (t *Tunnel) Slices() []physics.TunnelSlice {
	return t.slices
}

// Scroll moves every slice left by dx and drops the ones past x = 0.
func (t *Tunnel) Scroll(dx float64) {
	n := 0
	for _, s := range t.slices {
		s.X -= dx
		if s.X+s.Width <= 0 {
			continue
		}
		t.slices[n] = s
		n++
	}
	t.slices = t.slices[:n]
}

// Extend appends slices until the tunnel reaches right and returns the new
// ones. gap is the passage height wanted for new slices; it is approached
// one cell per slice so the passage never pinches shut.
func (t *Tunnel) Extend(right, gap float64, rng *rand.Rand) []physics.TunnelSlice {
	start := len(t.slices)
	for {
		x := 0.0
		if n := len(t.slices); n > 0 {
			last := t.slices[n-1]
			x = last.X + last.Width
		}
		if x >= right {
			break
		}
		t.slices = append(t.slices, t.next(x, gap, rng))
	}
	return t.slices[start:]
}

func (t *Tunnel) next(x, gap float64, rng *rand.Rand) physics.TunnelSlice {
	gap = math.Min(gap, t.bottom-t.top)
	switch {
	case t.gap < gap:
		t.gap = math.Min(t.gap+1, gap)
	case t.gap > gap:
		t.gap = math.Max(t.gap-1, gap)
	}

	lo, hi := t.top+t.gap/2, t.bottom-t.gap/2
	if t.left <= 0 {
		t.left = t.chunk
		t.target = lo + rng.Float64()*(hi-lo)
	}
	t.left--

	// Drift is capped below the gap so consecutive passages overlap.
	slope := math.Min(t.maxSlope, t.gap-2)
	t.center += max(-slope, min(slope, t.target-t.center))
	t.center = max(lo, min(hi, t.center))

	top := math.Round(t.center - t.gap/2)
	return physics.TunnelSlice{X: x, Width: 1, Top: top, Bottom: top + t.gap}
}

// At returns the slice covering column x.
func (t *Tunnel) At(x float64) (physics.TunnelSlice, bool) {
	for _, s := range t.slices {
		if x >= s.X && x < s.X+s.Width {
			return s, true
		}
	}
	return physics.TunnelSlice{}, false
}
