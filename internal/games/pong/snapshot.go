package pong

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot contains the state of a Pong game for determinism checks.
// Positions are scaled by 1000 and truncated so float noise below that
// precision does not matter.
type Snapshot struct {
	Phase     core.Phase
	BallX     int
	BallY     int
	BallVX    int
	BallVY    int
	PlayerY   int
	CPUY      int
	PlayerPts int
	CPUPts    int
	Score     int
	Returns   int
	Winner    Side
	Serving   bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	milli := func(v float64) int { return int(v * 1000) }
	return Snapshot{
		Phase:     g.Phase().Phase(),
		BallX:     milli(g.ball.Pos.X),
		BallY:     milli(g.ball.Pos.Y),
		BallVX:    milli(g.ball.Vel.X),
		BallVY:    milli(g.ball.Vel.Y),
		PlayerY:   milli(g.playerY),
		CPUY:      milli(g.cpuY),
		PlayerPts: g.playerPts,
		CPUPts:    g.cpuPts,
		Score:     g.Score,
		Returns:   g.returns,
		Winner:    g.winner,
		Serving:   g.serveIn > 0,
	}
}
