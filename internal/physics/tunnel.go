package physics

import "github.com/vovakirdan/retro-arcade/internal/core"

// TunnelSlice is one vertical strip of a scrolling tunnel. The open
// passage spans Top..Bottom.
type TunnelSlice struct {
	X      float64
	Width  float64
	Top    float64
	Bottom float64
}

// Gap returns the passage height.
func (s TunnelSlice) Gap() float64 {
	return s.Bottom - s.Top
}

// Walls returns the solid rectangles above and below the passage, limited
// to the field height h.
func (s TunnelSlice) Walls(h float64) (core.Rect, core.Rect) {
	return core.NewRect(s.X, 0, s.Width, s.Top),
		core.NewRect(s.X, s.Bottom, s.Width, h-s.Bottom)
}

// TunnelCollides reports whether box pokes above the top or below the
// bottom of any slice it horizontally overlaps.
func TunnelCollides(slices []TunnelSlice, box core.Rect) bool {
	for _, s := range slices {
		if box.Right() <= s.X || box.X >= s.X+s.Width {
			continue
		}
		if box.Y < s.Top || box.Bottom() > s.Bottom {
			return true
		}
	}
	return false
}
