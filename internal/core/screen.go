package core

import (
	"math"
	"strings"
)

// Cell is a single character position on the screen.
type Cell struct {
	Rune rune
	FG   Color
	Bold bool
}

var blankCell = Cell{Rune: ' ', FG: ColorBlack}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple primitives while the platform handles actual display.
// Screen implements Surface.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

var _ Surface = (*Screen)(nil)

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r, FG: ColorWhite}
		}
	}
}

// Set places a rune at the given position using the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r, FG: ColorWhite})
}

// SetCell places a full cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// paint applies a style to one cell. t is the gradient position.
func (s *Screen) paint(x, y int, st Style, t float64) {
	if st.Alpha <= 0 || x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	c := st.colorAt(t)
	if st.Alpha < 1 {
		c = s.cells[y][x].FG.Blend(c, st.Alpha)
	}
	glyph := st.Glyph
	if glyph == 0 {
		glyph = '█'
	}
	s.cells[y][x] = Cell{Rune: glyph, FG: c, Bold: st.Glow}
}

// FillRect fills the cells covered by r.
func (s *Screen) FillRect(r Rect, st Style) {
	x0, y0 := int(math.Floor(r.X)), int(math.Floor(r.Y))
	x1, y1 := int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom()))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.paint(x, y, st, gradientPos(st, x-x0, x1-x0, y-y0, y1-y0))
		}
	}
}

func gradientPos(st Style, dx, w, dy, h int) float64 {
	if st.Gradient == nil {
		return 0
	}
	if st.Gradient.Vertical {
		if h <= 1 {
			return 0
		}
		return float64(dy) / float64(h-1)
	}
	if w <= 1 {
		return 0
	}
	return float64(dx) / float64(w-1)
}

// StrokeRect outlines r.
func (s *Screen) StrokeRect(r Rect, st Style) {
	x0, y0 := int(math.Floor(r.X)), int(math.Floor(r.Y))
	x1, y1 := int(math.Ceil(r.Right()))-1, int(math.Ceil(r.Bottom()))-1
	for x := x0; x <= x1; x++ {
		s.paint(x, y0, st, 0)
		s.paint(x, y1, st, 0)
	}
	for y := y0; y <= y1; y++ {
		s.paint(x0, y, st, 0)
		s.paint(x1, y, st, 0)
	}
}

// FillCircle fills cells whose centers lie within radius of (cx, cy).
// A radius below one cell still paints the center cell.
func (s *Screen) FillCircle(cx, cy, radius float64, st Style) {
	if radius < 0.5 {
		s.paint(int(math.Floor(cx)), int(math.Floor(cy)), st, 0)
		return
	}
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				s.paint(x, y, st, 0)
			}
		}
	}
}

// Line draws a line using Bresenham's algorithm.
func (s *Screen) Line(x0, y0, x1, y1 float64, st Style) {
	ax, ay := int(math.Floor(x0)), int(math.Floor(y0))
	bx, by := int(math.Floor(x1)), int(math.Floor(y1))
	dx := Abs(bx - ax)
	dy := -Abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		s.paint(ax, ay, st, 0)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// Text writes a styled string horizontally starting at (x, y).
func (s *Screen) Text(x, y int, text string, st Style) {
	i := 0
	for _, r := range text {
		g := st
		g.Glyph = r
		s.paint(x+i, y, g, 0)
		i++
	}
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.Text(x, y, text, Solid(0, ColorWhite))
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.TextCentered(y, text, Solid(0, ColorWhite))
}

// TextCentered draws styled text centered horizontally.
func (s *Screen) TextCentered(y int, text string, st Style) {
	x := (s.width - len([]rune(text))) / 2
	s.Text(x, y, text, st)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	s.FillRect(r, Solid(fill, ColorWhite))
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.Right())-1, int(r.Bottom())-1

	s.SetCell(x0, y0, Cell{Rune: '┌', FG: c})
	s.SetCell(x1, y0, Cell{Rune: '┐', FG: c})
	s.SetCell(x0, y1, Cell{Rune: '└', FG: c})
	s.SetCell(x1, y1, Cell{Rune: '┘', FG: c})

	for x := x0 + 1; x < x1; x++ {
		s.SetCell(x, y0, Cell{Rune: '─', FG: c})
		s.SetCell(x, y1, Cell{Rune: '─', FG: c})
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetCell(x0, y, Cell{Rune: '│', FG: c})
		s.SetCell(x1, y, Cell{Rune: '│', FG: c})
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, r)
	}
}

// String converts the screen buffer to a plain string without color.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
