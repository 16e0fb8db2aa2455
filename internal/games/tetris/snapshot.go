package tetris

import (
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Snapshot contains the state of a Tetris game for determinism checks.
type Snapshot struct {
	Phase  core.Phase
	Score  int
	Level  int
	Lines  int
	Piece  Kind
	Rot    int
	X, Y   int
	Hold   Kind
	Next   string
	Board  string // one character per cell, rows separated by '/'
	Blocks int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	var next strings.Builder
	for _, k := range g.queue {
		next.WriteString(k.String())
	}
	var board strings.Builder
	for y := range g.board.H {
		if y > 0 {
			board.WriteByte('/')
		}
		for x := range g.board.W {
			if v := Kind(g.board.At(x, y)); v != KindNone {
				board.WriteString(v.String())
			} else {
				board.WriteByte('.')
			}
		}
	}
	return Snapshot{
		Phase:  g.Phase().Phase(),
		Score:  g.Score,
		Level:  g.Level,
		Lines:  g.lines,
		Piece:  g.cur.Kind,
		Rot:    g.cur.Rot,
		X:      g.cur.Pos.X,
		Y:      g.cur.Pos.Y,
		Hold:   g.hold,
		Next:   next.String(),
		Board:  board.String(),
		Blocks: g.board.Count(),
	}
}
