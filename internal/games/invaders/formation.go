package invaders

import (
	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

const alienW = 3.0

// alienSprites holds two animation frames per row class, top rows first.
var alienSprites = [][2]string{
	{"/o\\", "\\o/"},
	{"{@}", "}@{"},
	{"{@}", "}@{"},
	{"<W>", ">W<"},
	{"<W>", ">W<"},
}

var alienColors = []core.Color{
	core.ColorMagenta, core.ColorCyan, core.ColorCyan, core.ColorGreen, core.ColorGreen,
}

// Alien is one invader in the formation grid.
type Alien struct {
	Row, Col int
	Alive    bool
}

// Formation is the marching alien block. Alien positions are derived from
// the origin and the grid spacing.
type Formation struct {
	Rows, Cols int
	SpacingX   float64
	SpacingY   float64
	Origin     core.Vec
	Dir        int // +1 right, -1 left
	Frame      int // animation frame, flips every step
	Aliens     []Alien
}

// newFormation builds a full formation with its top-left alien at origin.
func newFormation(cfg config.InvadersFormation, origin core.Vec) Formation {
	f := Formation{
		Rows:     core.Max(cfg.Rows, 1),
		Cols:     core.Max(cfg.Columns, 1),
		SpacingX: float64(core.Max(cfg.SpacingX, int(alienW)+1)),
		SpacingY: float64(core.Max(cfg.SpacingY, 1)),
		Origin:   origin,
		Dir:      1,
	}
	f.Aliens = make([]Alien, 0, f.Rows*f.Cols)
	for r := range f.Rows {
		for c := range f.Cols {
			f.Aliens = append(f.Aliens, Alien{Row: r, Col: c, Alive: true})
		}
	}
	return f
}

// Width returns the formation's full span in cells.
func (f *Formation) Width() float64 {
	return float64(f.Cols-1)*f.SpacingX + alienW
}

// Rect returns the alien's collision box.
func (f *Formation) Rect(a Alien) core.Rect {
	return core.NewRect(
		f.Origin.X+float64(a.Col)*f.SpacingX,
		f.Origin.Y+float64(a.Row)*f.SpacingY,
		alienW, 1)
}

// Alive counts living aliens.
func (f *Formation) Alive() int {
	n := 0
	for _, a := range f.Aliens {
		if a.Alive {
			n++
		}
	}
	return n
}

// Extent returns the left edge, right edge and bottom of the living
// aliens. ok is false when none are left.
func (f *Formation) Extent() (left, right, bottom float64, ok bool) {
	for _, a := range f.Aliens {
		if !a.Alive {
			continue
		}
		r := f.Rect(a)
		if !ok {
			left, right, bottom, ok = r.X, r.Right(), r.Bottom(), true
			continue
		}
		left = min(left, r.X)
		right = max(right, r.Right())
		bottom = max(bottom, r.Bottom())
	}
	return left, right, bottom, ok
}

// Step marches the formation one step inside [minX, maxX). When the next
// horizontal step would cross an edge the formation drops by down instead
// and reverses. It reports whether it dropped.
func (f *Formation) Step(minX, maxX, dx, down float64) bool {
	f.Frame ^= 1
	left, right, _, ok := f.Extent()
	if !ok {
		return false
	}
	move := dx * float64(f.Dir)
	if left+move < minX || right+move > maxX {
		f.Origin.Y += down
		f.Dir = -f.Dir
		return true
	}
	f.Origin.X += move
	return false
}

// Frontline returns the index of the lowest living alien in every column
// that still has one. Only these aliens may fire.
func (f *Formation) Frontline() []int {
	var out []int
	for c := range f.Cols {
		for r := f.Rows - 1; r >= 0; r-- {
			i := r*f.Cols + c
			if f.Aliens[i].Alive {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
