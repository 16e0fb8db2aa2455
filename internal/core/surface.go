package core

// Surface is the immediate-mode 2D drawing context games render into.
// Coordinates are in cell units; fractional positions are floored.
type Surface interface {
	Width() int
	Height() int
	Clear()
	FillRect(r Rect, st Style)
	StrokeRect(r Rect, st Style)
	FillCircle(cx, cy, radius float64, st Style)
	Line(x0, y0, x1, y1 float64, st Style)
	Text(x, y int, text string, st Style)
}

// Style describes how a primitive is painted.
// Alpha <= 0 draws nothing; use Solid for an opaque style.
type Style struct {
	Glyph    rune
	Color    Color
	Alpha    float64
	Glow     bool
	Gradient *Gradient
}

// Gradient interpolates between two colors across a filled shape.
type Gradient struct {
	From, To Color
	Vertical bool
}

// Solid returns an opaque style.
func Solid(glyph rune, c Color) Style {
	return Style{Glyph: glyph, Color: c, Alpha: 1}
}

// Glowing returns an opaque, highlighted style.
func Glowing(glyph rune, c Color) Style {
	return Style{Glyph: glyph, Color: c, Alpha: 1, Glow: true}
}

// NewGradient creates a horizontal gradient.
func NewGradient(from, to Color) *Gradient {
	return &Gradient{From: from, To: to}
}

// WithAlpha returns a copy of st with the given alpha.
func (st Style) WithAlpha(a float64) Style {
	st.Alpha = a
	return st
}

// WithGradient returns a copy of st painted with g.
func (st Style) WithGradient(g *Gradient) Style {
	st.Gradient = g
	return st
}

// colorAt resolves the style color at relative position t in [0, 1].
func (st Style) colorAt(t float64) Color {
	if st.Gradient == nil {
		return st.Color
	}
	return st.Gradient.From.Blend(st.Gradient.To, t)
}
