package invaders

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot contains the state of a Space Invaders game for determinism
// checks. Positions are scaled by 1000 and truncated.
type Snapshot struct {
	Phase       core.Phase
	Score       int
	Lives       int
	Wave        int
	Alive       int
	Kills       int
	OriginX     int
	OriginY     int
	Dir         int
	PlayerX     int
	Shots       int
	Bombs       int
	ShieldCells int
	Saucer      bool
	SaucerX     int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	milli := func(v float64) int { return int(v * 1000) }
	return Snapshot{
		Phase:       g.Phase().Phase(),
		Score:       g.Score,
		Lives:       g.Lives,
		Wave:        g.Level,
		Alive:       g.formation.Alive(),
		Kills:       g.kills,
		OriginX:     milli(g.formation.Origin.X),
		OriginY:     milli(g.formation.Origin.Y),
		Dir:         g.formation.Dir,
		PlayerX:     milli(g.playerX),
		Shots:       len(g.shots),
		Bombs:       len(g.bombs),
		ShieldCells: g.shieldCells(),
		Saucer:      g.saucer.Active,
		SaucerX:     milli(g.saucer.Pos.X),
	}
}
