// Package breakout implements a Breakout/Arkanoid-style brick breaker game.
package breakout

import "github.com/vovakirdan/retro-arcade/internal/core"

// Brick is one block of the wall. It is removed when Hits reaches zero and
// is worth MaxHits times the per-hit points.
type Brick struct {
	Rect    core.Rect
	Hits    int
	MaxHits int
	Row     int
}

// Alive reports whether the brick is still standing.
func (b *Brick) Alive() bool {
	return b.Hits > 0
}

// rowColors cycle down the wall, top row first.
var rowColors = []core.Color{
	core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorGreen,
	core.ColorCyan, core.ColorBlue, core.ColorPurple, core.ColorMagenta,
}

// rowsFor returns the wall height at level (1-based): the base rows plus
// one per level, capped at maxRows.
func rowsFor(base, level, maxRows int) int {
	rows := base + level
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}
	return rows
}

// maxHitsFor returns how many hits a brick in row needs. The top rows get
// tougher as the wall grows; no brick needs more than three.
func maxHitsFor(row, rows int) int {
	return core.Clamp(1+(rows-1-row)/4, 1, 3)
}

// buildWall lays out rows × cols bricks across width cells starting at
// (left, top). Every brick is one cell tall; the last column absorbs any
// rounding so the wall spans the full width.
func buildWall(rows, cols int, left, top, width float64) []Brick {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	bricks := make([]Brick, 0, rows*cols)
	bw := width / float64(cols)
	for r := range rows {
		for c := range cols {
			hits := maxHitsFor(r, rows)
			bricks = append(bricks, Brick{
				Rect:    core.NewRect(left+float64(c)*bw, top+float64(r), bw, 1),
				Hits:    hits,
				MaxHits: hits,
				Row:     r,
			})
		}
	}
	return bricks
}

// brickStyle returns the drawing style for a brick: its row color, dimmed
// as it takes damage.
func brickStyle(b *Brick) core.Style {
	c := rowColors[b.Row%len(rowColors)]
	glyph := '█'
	if b.Hits < b.MaxHits {
		c = c.Scale(0.55 + 0.45*float64(b.Hits)/float64(b.MaxHits))
		glyph = '▓'
	}
	st := core.Solid(glyph, c)
	if b.MaxHits > 1 {
		st.Glow = true
	}
	return st
}
