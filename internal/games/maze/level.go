package maze

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/physics"
)

// Tile is one maze cell.
type Tile byte

const (
	TileEmpty Tile = iota
	TileWall
	TileVoid // outside the maze, never drawn
	TileDoor // ghost house door
	TileHouse
)

// Pellet values stored in the pellet grid.
const (
	pelletNone = iota
	pelletSmall
	pelletPower
)

// layout legend: # wall, _ void, . pellet, o power pellet, - door,
// G ghost house, P player start. Open edges wrap around.
var layout = []string{
	"###################",
	"#........#........#",
	"#o##.###.#.###.##o#",
	"#.................#",
	"#.##.#.#####.#.##.#",
	"#....#...#...#....#",
	"####.### # ###.####",
	"___#.#       #.#___",
	"####.# ##-## #.####",
	"    .  #GGG#  .    ",
	"####.# ##### #.####",
	"___#.#       #.#___",
	"####.# ##### #.####",
	"#........#........#",
	"#.##.###.#.###.##.#",
	"#o.#.....P.....#.o#",
	"##.#.#.#####.#.#.##",
	"#....#...#...#....#",
	"#.######.#.######.#",
	"#.................#",
	"###################",
}

// Level is a parsed maze: static tiles, the initial pellets and the spawn
// points.
type Level struct {
	W, H    int
	tiles   []Tile
	pellets *physics.Grid // initial pellets, copied per level

	PlayerStart physics.Point
	House       []physics.Point // ghost house cells, left to right
	Door        physics.Point
	Exit        physics.Point // tile just outside the door
}

// parseLevel builds a Level from rows of the legend above.
func parseLevel(rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze: empty layout")
	}
	w, h := len(rows[0]), len(rows)
	lv := &Level{W: w, H: h, tiles: make([]Tile, w*h), pellets: physics.NewGrid(w, h)}

	var foundPlayer, foundDoor bool
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("maze: row %d has %d cells, expected %d", y, len(row), w)
		}
		for x, c := range []byte(row) {
			t := TileEmpty
			switch c {
			case '#':
				t = TileWall
			case '_':
				t = TileVoid
			case '-':
				t = TileDoor
				lv.Door = physics.Point{X: x, Y: y}
				foundDoor = true
			case 'G':
				t = TileHouse
				lv.House = append(lv.House, physics.Point{X: x, Y: y})
			case '.':
				lv.pellets.Set(x, y, pelletSmall)
			case 'o':
				lv.pellets.Set(x, y, pelletPower)
			case 'P':
				lv.PlayerStart = physics.Point{X: x, Y: y}
				foundPlayer = true
			case ' ':
			default:
				return nil, fmt.Errorf("maze: unknown tile %q at %d,%d", c, x, y)
			}
			lv.tiles[y*w+x] = t
		}
	}
	if !foundPlayer || !foundDoor || len(lv.House) == 0 {
		return nil, fmt.Errorf("maze: layout needs a player start, a door and a ghost house")
	}
	lv.Exit = physics.Point{X: lv.Door.X, Y: lv.Door.Y - 1}
	return lv, nil
}

// Tile returns the tile at p. Points outside the maze are void.
func (lv *Level) Tile(p physics.Point) Tile {
	if p.X < 0 || p.X >= lv.W || p.Y < 0 || p.Y >= lv.H {
		return TileVoid
	}
	return lv.tiles[p.Y*lv.W+p.X]
}

// Wrap maps a point that stepped off a side edge to the opposite edge.
func (lv *Level) Wrap(p physics.Point) physics.Point {
	switch {
	case p.X < 0:
		p.X = lv.W - 1
	case p.X >= lv.W:
		p.X = 0
	}
	return p
}

// Walkable reports whether p can be entered. The door and the house are
// open only when door is set.
func (lv *Level) Walkable(p physics.Point, door bool) bool {
	switch lv.Tile(p) {
	case TileEmpty:
		return true
	case TileDoor, TileHouse:
		return door
	}
	return false
}

// freshPellets returns a copy of the initial pellet grid.
func (lv *Level) freshPellets() *physics.Grid {
	g := physics.NewGrid(lv.W, lv.H)
	for y := range lv.H {
		for x := range lv.W {
			g.Set(x, y, lv.pellets.At(x, y))
		}
	}
	return g
}
