package maze

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

var (
	dirUp    = physics.Point{Y: -1}
	dirLeft  = physics.Point{X: -1}
	dirDown  = physics.Point{Y: 1}
	dirRight = physics.Point{X: 1}
	dirNone  = physics.Point{}
)

// directions in tie-break order.
var directions = []physics.Point{dirUp, dirLeft, dirDown, dirRight}

func reverse(d physics.Point) physics.Point {
	return physics.Point{X: -d.X, Y: -d.Y}
}

// GhostMode is what a ghost is doing right now.
type GhostMode int

const (
	GhostHouse   GhostMode = iota // waiting for release
	GhostLeaving                  // walking out through the door
	GhostActive                   // chasing or scattering
	GhostEaten                    // eyes returning home
)

// Personality picks the chase target.
type Personality int

const (
	Chaser     Personality = iota // the player's tile
	Ambusher                      // four tiles ahead of the player
	Flanker                       // mirrors the chaser around a point ahead of the player
	Wanderer                      // chases from afar, retreats up close
)

var ghostColors = []core.Color{core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange}

// Ghost is one pursuer.
type Ghost struct {
	Personality Personality
	Pos         physics.Point
	Dir         physics.Point
	Mode        GhostMode
	Frightened  bool
	Corner      physics.Point // scatter target
	ReleaseAt   float64       // round clock at which a housed ghost leaves
	timer       float64
}

func distSq(a, b physics.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// chaseTarget returns the tile a ghost heads for in chase mode.
func (g *Game) chaseTarget(gh *Ghost) physics.Point {
	p, d := g.player.Pos, g.player.Dir
	ahead := func(n int) physics.Point {
		return physics.Point{X: p.X + d.X*n, Y: p.Y + d.Y*n}
	}
	switch gh.Personality {
	case Ambusher:
		return ahead(4)
	case Flanker:
		pivot := ahead(2)
		chaser := p
		for i := range g.ghosts {
			if g.ghosts[i].Personality == Chaser {
				chaser = g.ghosts[i].Pos
				break
			}
		}
		return physics.Point{X: 2*pivot.X - chaser.X, Y: 2*pivot.Y - chaser.Y}
	case Wanderer:
		if distSq(gh.Pos, p) <= 64 {
			return gh.Corner
		}
	}
	return p
}

// target returns the tile a ghost steers towards in its current mode.
func (g *Game) target(gh *Ghost) physics.Point {
	switch {
	case gh.Mode == GhostLeaving, gh.Mode == GhostEaten:
		return g.level.Exit
	case g.scatter:
		return gh.Corner
	}
	return g.chaseTarget(gh)
}

// options lists the directions a ghost may take from its tile. Reversing
// is allowed only when nothing else is open.
func (g *Game) options(gh *Ghost, door, allowReverse bool) []physics.Point {
	var opts []physics.Point
	for _, d := range directions {
		if d == reverse(gh.Dir) && !allowReverse && gh.Dir != dirNone {
			continue
		}
		if g.level.Walkable(g.level.Wrap(gh.Pos.Add(d)), door) {
			opts = append(opts, d)
		}
	}
	if len(opts) == 0 && g.level.Walkable(g.level.Wrap(gh.Pos.Add(reverse(gh.Dir))), door) {
		opts = append(opts, reverse(gh.Dir))
	}
	return opts
}

// steer picks the next direction: random while frightened, otherwise the
// open neighbour closest to the target, ties broken up, left, down, right.
func (g *Game) steer(gh *Ghost) physics.Point {
	door := gh.Mode == GhostLeaving || gh.Mode == GhostEaten
	opts := g.options(gh, door, gh.Mode == GhostLeaving)
	if len(opts) == 0 {
		return dirNone
	}
	if gh.Frightened && gh.Mode == GhostActive {
		return opts[g.Rng.Intn(len(opts))]
	}

	t := g.target(gh)
	best, bestD := opts[0], -1
	for _, d := range opts {
		if dd := distSq(g.level.Wrap(gh.Pos.Add(d)), t); bestD < 0 || dd < bestD {
			best, bestD = d, dd
		}
	}
	return best
}

// ghostInterval returns seconds per tile for a ghost.
func (g *Game) ghostInterval(gh *Ghost) float64 {
	tm := g.cfg.Timing
	switch {
	case gh.Mode == GhostEaten:
		return tm.PlayerStep / 2
	case gh.Frightened:
		return tm.FrightenedStep
	}
	return g.paced(tm.GhostStep)
}

// updateGhost advances one ghost by dt, stepping tiles as its interval
// allows.
func (g *Game) updateGhost(i int, dt float64) {
	gh := &g.ghosts[i]
	if gh.Mode == GhostHouse {
		if g.Clock < gh.ReleaseAt {
			return
		}
		gh.Mode = GhostLeaving
		gh.timer = 0
	}

	gh.timer += dt
	for steps := 0; steps < maxStepsPerTick; steps++ {
		iv := g.ghostInterval(gh)
		if gh.timer < iv {
			return
		}
		gh.timer -= iv
		g.stepGhost(gh)
		g.checkCollisions()
		if !g.Phase().Is(core.PhaseRunning) {
			return
		}
	}
	gh.timer = min(gh.timer, g.ghostInterval(gh))
}

// stepGhost moves a ghost one tile and handles arriving at the door.
func (g *Game) stepGhost(gh *Ghost) {
	d := g.steer(gh)
	if d == dirNone {
		return
	}
	gh.Dir = d
	gh.Pos = g.level.Wrap(gh.Pos.Add(d))

	if gh.Pos != g.level.Exit {
		return
	}
	switch gh.Mode {
	case GhostLeaving:
		gh.Mode = GhostActive
		gh.Dir = dirLeft
	case GhostEaten:
		// Revived inside the house, then walks straight back out.
		gh.Pos = g.level.House[len(g.level.House)/2]
		gh.Mode = GhostLeaving
		gh.Dir = dirUp
	}
}

// reverseGhosts turns every roaming ghost around, as happens when the mode
// changes or a power pellet is eaten.
func (g *Game) reverseGhosts() {
	for i := range g.ghosts {
		if gh := &g.ghosts[i]; gh.Mode == GhostActive {
			gh.Dir = reverse(gh.Dir)
		}
	}
}
