package maze

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Snapshot contains the state of a maze game for determinism checks.
type Snapshot struct {
	Phase      core.Phase
	Score      int
	Lives      int
	Level      int
	Pellets    int
	Player     string
	Ghosts     []string // position, mode and frightened flag per ghost
	Scatter    bool
	Frightened bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      g.Phase().Phase(),
		Score:      g.Score,
		Lives:      g.Lives,
		Level:      g.Level,
		Pellets:    g.pellets.Count(),
		Player:     fmt.Sprintf("%d,%d", g.player.Pos.X, g.player.Pos.Y),
		Scatter:    g.scatter,
		Frightened: g.Active(EffectFrightened),
	}
	for _, gh := range g.ghosts {
		s.Ghosts = append(s.Ghosts, fmt.Sprintf("%d,%d/%d/%t", gh.Pos.X, gh.Pos.Y, gh.Mode, gh.Frightened))
	}
	return s
}
