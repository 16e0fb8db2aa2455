package breakout

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot contains the state of a Breakout game for determinism checks.
// Positions are scaled by 1000 and truncated.
type Snapshot struct {
	Phase           core.Phase
	Score           int
	Lives           int
	Level           int
	PaddleX         int
	PaddleWidth     int
	BallX           int
	BallY           int
	BallVX          int
	BallVY          int
	Stuck           bool
	BricksRemaining int
	Hits            int
	Cleared         int

	// Each pickup is 3 ints: Type, X, Y
	PickupData []int
	// Each effect is 2 ints: Kind, ExpiresAt
	EffectData []int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	milli := func(v float64) int { return int(v * 1000) }
	s := Snapshot{
		Phase:           g.Phase().Phase(),
		Score:           g.Score,
		Lives:           g.Lives,
		Level:           g.Level,
		PaddleX:         milli(g.paddle.X),
		PaddleWidth:     milli(g.paddle.Width),
		BallX:           milli(g.ball.Pos.X),
		BallY:           milli(g.ball.Pos.Y),
		BallVX:          milli(g.ball.Vel.X),
		BallVY:          milli(g.ball.Vel.Y),
		Stuck:           g.stuck,
		BricksRemaining: g.bricksLeft(),
		Hits:            g.hits,
		Cleared:         g.cleared,
	}
	for _, p := range g.pickups {
		s.PickupData = append(s.PickupData, int(p.Type), milli(p.Pos.X), milli(p.Pos.Y))
	}
	for _, e := range g.Effects().List() {
		s.EffectData = append(s.EffectData, int(e.Kind), milli(e.ExpiresAt))
	}
	return s
}
