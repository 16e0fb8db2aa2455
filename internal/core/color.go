package core

import "fmt"

// Color is a 24-bit foreground color for a screen cell.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Predefined colors for game elements.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(230, 230, 230)
	ColorGray    = RGB(120, 120, 120)
	ColorRed     = RGB(255, 70, 70)
	ColorOrange  = RGB(255, 150, 40)
	ColorYellow  = RGB(255, 225, 60)
	ColorGreen   = RGB(70, 230, 110)
	ColorCyan    = RGB(60, 220, 240)
	ColorBlue    = RGB(70, 120, 255)
	ColorPurple  = RGB(180, 90, 255)
	ColorMagenta = RGB(255, 80, 200)
	ColorPink    = RGB(255, 160, 200)
	ColorBrown   = RGB(150, 90, 40)
)

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c toward other by t in [0, 1].
func (c Color) Blend(other Color, t float64) Color {
	t = ClampF(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(Lerp(float64(a), float64(b), t) + 0.5)
	}
	return Color{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}

// Scale darkens (f < 1) or brightens (f > 1) the color.
func (c Color) Scale(f float64) Color {
	ch := func(v uint8) uint8 {
		return uint8(ClampF(float64(v)*f, 0, 255))
	}
	return Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}
