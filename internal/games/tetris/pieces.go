package tetris

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

// Kind is a tetromino type. Its value is also the board cell value of a
// locked block, so KindNone is an empty cell.
type Kind int

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

// String returns the piece letter.
func (k Kind) String() string {
	if k <= KindNone || k >= kindCount {
		return "-"
	}
	return string("IOTSZJL"[k-1])
}

// Color returns the classic guideline color for the piece.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindO:
		return core.ColorYellow
	case KindT:
		return core.ColorPurple
	case KindS:
		return core.ColorGreen
	case KindZ:
		return core.ColorRed
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	default:
		return core.ColorGray
	}
}

// spawnShapes are the rotation-0 states inside each piece's bounding box.
var spawnShapes = [kindCount]struct {
	size  int
	cells []physics.Point
}{
	KindI: {4, []physics.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}},
	KindO: {2, []physics.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
	KindT: {3, []physics.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	KindS: {3, []physics.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
	KindZ: {3, []physics.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	KindJ: {3, []physics.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	KindL: {3, []physics.Point{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
}

// shapes[kind][rotation] holds the four SRS rotation states, clockwise.
var shapes [kindCount][4][]physics.Point

func init() {
	for k := KindI; k < kindCount; k++ {
		s := spawnShapes[k]
		cur := s.cells
		for r := range 4 {
			shapes[k][r] = cur
			next := make([]physics.Point, len(cur))
			for i, c := range cur {
				next[i] = physics.Point{X: s.size - 1 - c.Y, Y: c.X}
			}
			cur = next
		}
	}
}

// kicks are tried in order when a rotation does not fit in place.
var kicks = []physics.Point{
	{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -2, Y: 0}, {X: 2, Y: 0},
}

// Piece is the falling tetromino.
type Piece struct {
	Kind Kind
	Rot  int
	Pos  physics.Point // bounding box origin on the board
}

// Cells returns the piece's cells relative to Pos.
func (p Piece) Cells() []physics.Point {
	return shapes[p.Kind][p.Rot]
}

// boxSize returns the bounding box edge for k.
func boxSize(k Kind) int {
	return spawnShapes[k].size
}

// lineScores is indexed by lines cleared at once; multiplied by level.
var lineScores = [5]int{0, 100, 300, 500, 800}
