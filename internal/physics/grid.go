package physics

// Point is an integer lattice coordinate.
type Point struct {
	X, Y int
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Grid is a fixed-size lattice of cell values. Zero means empty.
type Grid struct {
	W, H  int
	cells []int
}

// NewGrid allocates an empty w×h grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]int, w*h)}
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y), or 0 when out of bounds.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[y*g.W+x]
}

// Set writes v at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y, v int) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.W+x] = v
}

// Empty reports whether (x, y) is on the grid and unoccupied.
func (g *Grid) Empty(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y*g.W+x] == 0
}

// Fits reports whether every cell of shape offset by origin is empty.
// Cells above the top edge (negative y) are allowed so pieces can spawn
// partly hidden.
func (g *Grid) Fits(shape []Point, origin Point) bool {
	for _, c := range shape {
		p := c.Add(origin)
		if p.X < 0 || p.X >= g.W || p.Y >= g.H {
			return false
		}
		if p.Y < 0 {
			continue
		}
		if g.cells[p.Y*g.W+p.X] != 0 {
			return false
		}
	}
	return true
}

// Stamp writes v into every on-grid cell of shape offset by origin.
func (g *Grid) Stamp(shape []Point, origin Point, v int) {
	for _, c := range shape {
		p := c.Add(origin)
		g.Set(p.X, p.Y, v)
	}
}

// FullRows returns the indices of completely filled rows, top to bottom.
func (g *Grid) FullRows() []int {
	var rows []int
	for y := 0; y < g.H; y++ {
		full := true
		for x := 0; x < g.W; x++ {
			if g.cells[y*g.W+x] == 0 {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes the given rows, shifting everything above them down
// and inserting empty rows at the top. rows must be sorted ascending.
func (g *Grid) ClearRows(rows []int) int {
	if len(rows) == 0 {
		return 0
	}
	remove := make(map[int]bool, len(rows))
	for _, r := range rows {
		remove[r] = true
	}
	dst := g.H - 1
	for src := g.H - 1; src >= 0; src-- {
		if remove[src] {
			continue
		}
		if dst != src {
			copy(g.cells[dst*g.W:(dst+1)*g.W], g.cells[src*g.W:(src+1)*g.W])
		}
		dst--
	}
	for y := dst; y >= 0; y-- {
		clear(g.cells[y*g.W : (y+1)*g.W])
	}
	return len(remove)
}

// Reset empties the grid.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
