package invaders

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

const shieldHP = 2 // hits per shield cell

// Shield is a bunker that erodes one cell at a time.
type Shield struct {
	X, Y  float64
	Cells *physics.Grid // hit points per cell
}

func newShield(x, y float64, w, h int) Shield {
	s := Shield{X: x, Y: y, Cells: physics.NewGrid(w, h)}
	for cy := range h {
		for cx := range w {
			// Classic arch: the bottom middle is open.
			if cy == h-1 && h > 1 && cx > 0 && cx < w-1 && w > 3 {
				continue
			}
			s.Cells.Set(cx, cy, shieldHP)
		}
	}
	return s
}

// cellRect returns the screen box of a shield cell.
func (s *Shield) cellRect(cx, cy int) core.Rect {
	return core.NewRect(s.X+float64(cx), s.Y+float64(cy), 1, 1)
}

// layoutShields spreads count bunkers evenly across width with their top
// at y.
func layoutShields(count, w, h int, width, y float64) []Shield {
	if count <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	gap := (width - float64(count*w)) / float64(count+1)
	if gap < 1 {
		return nil
	}
	shields := make([]Shield, 0, count)
	for i := range count {
		x := gap + float64(i)*(gap+float64(w))
		shields = append(shields, newShield(float64(int(x)), y, w, h))
	}
	return shields
}

// shieldCell locates one shield cell for hit resolution.
type shieldCell struct {
	shield, x, y int
}

// shieldTargets appends the boxes of every intact shield cell.
func (g *Game) shieldTargets(rects []core.Rect, targets []target) ([]core.Rect, []target) {
	for si := range g.shields {
		s := &g.shields[si]
		for cy := range s.Cells.H {
			for cx := range s.Cells.W {
				if s.Cells.At(cx, cy) > 0 {
					rects = append(rects, s.cellRect(cx, cy))
					targets = append(targets, target{kind: targetShield, cell: shieldCell{si, cx, cy}})
				}
			}
		}
	}
	return rects, targets
}

// erode removes one hit point from a shield cell.
func (g *Game) erode(c shieldCell) {
	s := &g.shields[c.shield]
	s.Cells.Set(c.x, c.y, s.Cells.At(c.x, c.y)-1)
}

// crushShields wipes every shield cell an alien overlaps.
func (g *Game) crushShields() {
	for _, a := range g.formation.Aliens {
		if !a.Alive {
			continue
		}
		ar := g.formation.Rect(a)
		for si := range g.shields {
			s := &g.shields[si]
			for cy := range s.Cells.H {
				for cx := range s.Cells.W {
					if s.Cells.At(cx, cy) > 0 && physics.Overlaps(ar, s.cellRect(cx, cy)) {
						s.Cells.Set(cx, cy, 0)
					}
				}
			}
		}
	}
}

// shieldCells counts intact shield cells.
func (g *Game) shieldCells() int {
	n := 0
	for i := range g.shields {
		n += g.shields[i].Cells.Count()
	}
	return n
}
