package runner

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot contains the state of a runner game for determinism checks.
// Positions are scaled by 1000 and truncated.
type Snapshot struct {
	Phase    core.Phase
	Score    int
	Lives    int
	Level    int
	Bombs    int
	Distance int
	ShipY    int
	ShipVY   int
	Coins    int
	Rocks    int
	Crashes  int
	Tunnel   []int // top and bottom per slice
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	milli := func(v float64) int { return int(v * 1000) }
	s := Snapshot{
		Phase:    g.Phase().Phase(),
		Score:    g.Score,
		Lives:    g.Lives,
		Level:    g.Level,
		Bombs:    g.bombs,
		Distance: milli(g.distance),
		ShipY:    milli(g.shipY),
		ShipVY:   milli(g.shipVY),
		Coins:    len(g.coins),
		Rocks:    len(g.rocks),
		Crashes:  g.crashes,
	}
	for _, sl := range g.tunnel.Slices() {
		s.Tunnel = append(s.Tunnel, int(sl.Top), int(sl.Bottom))
	}
	return s
}
