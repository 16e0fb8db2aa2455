package maze

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func pt(x, y int) physics.Point {
	return physics.Point{X: x, Y: y}
}

// newRunning starts a round with the given number of ghosts.
func newRunning(t *testing.T, seed int64, ghosts int) (*Game, *input.Manager) {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	g.cfg.Gameplay.Ghosts = ghosts
	g.resetActors()
	if !g.Phase().Start() {
		t.Fatal("could not start round")
	}
	return g, input.NewManager(input.DefaultOptions())
}

// step returns a tick length that moves the player exactly one tile.
func step(g *Game) float64 {
	return g.paced(g.cfg.Timing.PlayerStep) * 1.01
}

func TestLayout(t *testing.T) {
	lv, err := parseLevel(layout)
	if err != nil {
		t.Fatal(err)
	}

	power := 0
	for y := range lv.H {
		for x := range lv.W {
			if lv.pellets.At(x, y) == pelletPower {
				power++
			}
		}
	}
	if power != 4 {
		t.Errorf("%d power pellets, expected 4", power)
	}
	if len(lv.House) != 3 {
		t.Errorf("%d house cells, expected 3", len(lv.House))
	}
	if !lv.Walkable(lv.Exit, false) {
		t.Error("tile outside the door must be open")
	}

	// Every pellet is reachable from the start.
	seen := map[physics.Point]bool{lv.PlayerStart: true}
	queue := []physics.Point{lv.PlayerStart}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			n := lv.Wrap(p.Add(d))
			if !seen[n] && lv.Walkable(n, false) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	for y := range lv.H {
		for x := range lv.W {
			if lv.pellets.At(x, y) != pelletNone && !seen[pt(x, y)] {
				t.Errorf("pellet at %d,%d is unreachable", x, y)
			}
		}
	}
	if seen[lv.Door] {
		t.Error("player must not reach the ghost door")
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"#P-G#", "###"}},
		{"unknown tile", []string{"#P-G?"}},
		{"no player", []string{"#.-G#"}},
		{"no house", []string{"#P-.#"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseLevel(tt.rows); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPlayerEatsPellet(t *testing.T) {
	g, in := newRunning(t, 1, 0)
	before := g.pellets.Count()

	g.Tick(step(g), in)

	if g.player.Pos != pt(8, 15) {
		t.Fatalf("player at %v, expected 8,15", g.player.Pos)
	}
	if g.Score != g.cfg.Gameplay.PelletPoints {
		t.Errorf("Score = %d, expected %d", g.Score, g.cfg.Gameplay.PelletPoints)
	}
	if g.pellets.Count() != before-1 {
		t.Errorf("pellets = %d, expected %d", g.pellets.Count(), before-1)
	}
}

func TestBufferedTurn(t *testing.T) {
	g, in := newRunning(t, 1, 0)

	// Up is a wall at the start; the turn waits for the next opening.
	in.KeyDown(input.KeyUp, t0)
	g.Tick(step(g), in)
	if g.player.Pos != pt(8, 15) || g.player.Dir != dirLeft {
		t.Fatalf("player at %v dir %v, expected to keep going left", g.player.Pos, g.player.Dir)
	}
	g.Tick(step(g), in)
	if g.player.Pos != pt(8, 14) || g.player.Dir != dirUp {
		t.Errorf("player at %v dir %v, expected to turn up at 8,14", g.player.Pos, g.player.Dir)
	}
}

func TestPlayerStopsAtWall(t *testing.T) {
	g, in := newRunning(t, 1, 0)
	g.player.Pos = pt(1, 19)

	g.Tick(step(g), in)

	if g.player.Pos != pt(1, 19) {
		t.Errorf("player at %v, expected to stay against the wall", g.player.Pos)
	}
}

func TestTunnelWraps(t *testing.T) {
	g, in := newRunning(t, 1, 0)
	g.player.Pos = pt(0, 9)

	g.Tick(step(g), in)

	if g.player.Pos != pt(g.level.W-1, 9) {
		t.Errorf("player at %v, expected to wrap to the right edge", g.player.Pos)
	}
}

func TestPowerPelletFrightens(t *testing.T) {
	g, in := newRunning(t, 1, 4)
	g.player.Pos = pt(2, 15)

	g.Tick(step(g), in)

	if g.Score != g.cfg.Gameplay.PowerPoints {
		t.Errorf("Score = %d, expected %d", g.Score, g.cfg.Gameplay.PowerPoints)
	}
	if !g.Active(EffectFrightened) {
		t.Fatal("power pellet should frighten the ghosts")
	}
	for i, gh := range g.ghosts {
		if !gh.Frightened {
			t.Errorf("ghost %d not frightened", i)
		}
	}
	if g.ghosts[0].Dir != dirRight {
		t.Errorf("roaming ghost dir %v, expected it reversed", g.ghosts[0].Dir)
	}
	if !slices.Contains(g.DrainCues(), core.CuePowerUp) {
		t.Error("expected CuePowerUp")
	}
}

func TestGhostPointsDouble(t *testing.T) {
	g, _ := newRunning(t, 1, 3)
	g.frighten()
	for i := range g.ghosts {
		g.ghosts[i].Mode = GhostActive
		g.ghosts[i].Pos = g.player.Pos
	}

	g.checkCollisions()

	base := g.cfg.Gameplay.GhostPoints
	if want := base + 2*base + 4*base; g.Score != want {
		t.Errorf("Score = %d, expected %d", g.Score, want)
	}
	for i, gh := range g.ghosts {
		if gh.Mode != GhostEaten || gh.Frightened {
			t.Errorf("ghost %d mode=%d frightened=%v, expected eaten", i, gh.Mode, gh.Frightened)
		}
	}
	if g.Lives != g.cfg.Gameplay.Lives {
		t.Error("eating ghosts must not cost a life")
	}
}

func TestGhostCatchesPlayer(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	g.player.Pos = pt(1, 1)
	g.ghosts[0].Pos = pt(1, 1)

	g.checkCollisions()

	if g.Lives != g.cfg.Gameplay.Lives-1 {
		t.Fatalf("Lives = %d, expected %d", g.Lives, g.cfg.Gameplay.Lives-1)
	}
	if !g.Phase().Is(core.PhaseTransitioning) {
		t.Fatalf("phase = %v, expected the respawn pause", g.Phase().Phase())
	}

	g.Phase().Advance(respawnPause)
	g.FinishTransition()
	if g.player.Pos != g.level.PlayerStart || g.ghosts[0].Pos != g.level.Exit {
		t.Errorf("player %v ghost %v, expected both back at their start", g.player.Pos, g.ghosts[0].Pos)
	}
	if g.pellets.Count() != g.level.pellets.Count() {
		t.Error("losing a life keeps the pellets")
	}
}

func TestEatenGhostIsHarmless(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	g.ghosts[0].Mode = GhostEaten
	g.ghosts[0].Pos = g.player.Pos

	g.checkCollisions()

	if g.Lives != g.cfg.Gameplay.Lives {
		t.Error("eyes should pass through the player")
	}
}

func TestLastLifeEndsRound(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	g.Lives = 1
	g.ghosts[0].Pos = g.player.Pos

	g.checkCollisions()

	if !g.State().GameOver() {
		t.Errorf("phase = %v, expected GameOver", g.Phase().Phase())
	}
}

func TestChaseTargets(t *testing.T) {
	g, _ := newRunning(t, 1, 4)
	g.player.Pos = pt(9, 15)
	g.player.Dir = dirLeft
	g.ghosts[0].Pos = pt(9, 7)

	tests := []struct {
		name  string
		ghost int
		pos   physics.Point
		want  physics.Point
	}{
		{"chaser goes for the player", 0, pt(9, 7), pt(9, 15)},
		{"ambusher aims ahead", 1, pt(1, 1), pt(5, 15)},
		{"flanker mirrors the chaser", 2, pt(1, 1), pt(5, 23)},
		{"wanderer chases from afar", 3, pt(1, 1), pt(9, 15)},
		{"wanderer retreats up close", 3, pt(9, 13), g.ghosts[3].Corner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &g.ghosts[tt.ghost]
			gh.Pos = tt.pos
			if got := g.chaseTarget(gh); got != tt.want {
				t.Errorf("target = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestGhostSteering(t *testing.T) {
	tests := []struct {
		name   string
		pos    physics.Point
		dir    physics.Point
		player physics.Point
		want   physics.Point
	}{
		{"never reverses in a corridor", pt(9, 3), dirRight, pt(1, 3), dirRight},
		{"picks the closest open tile", pt(4, 3), dirRight, pt(4, 13), dirDown},
		{"ties go up first", pt(4, 3), dirRight, pt(4, 3), dirUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newRunning(t, 1, 1)
			g.scatter = false
			g.player.Pos = tt.player
			gh := &g.ghosts[0]
			gh.Pos, gh.Dir = tt.pos, tt.dir
			if got := g.steer(gh); got != tt.want {
				t.Errorf("steer = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestGhostLeavesHouse(t *testing.T) {
	g, _ := newRunning(t, 1, 3)
	gh := &g.ghosts[1]
	if gh.Mode != GhostHouse {
		t.Fatalf("ghost 1 mode = %d, expected to start in the house", gh.Mode)
	}

	g.updateGhost(1, 0.5)
	if gh.Mode != GhostHouse {
		t.Fatal("ghost left before its release time")
	}

	gh.ReleaseAt = 0
	for range 3 {
		g.updateGhost(1, g.paced(g.cfg.Timing.GhostStep)*1.001)
	}
	if gh.Pos != g.level.Exit || gh.Mode != GhostActive {
		t.Errorf("ghost at %v mode %d, expected active outside the door", gh.Pos, gh.Mode)
	}
	if g.ghosts[2].Mode != GhostHouse {
		t.Error("later ghosts should still be waiting")
	}
}

func TestEatenGhostReturnsHome(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	gh := &g.ghosts[0]
	gh.Mode = GhostEaten
	gh.Pos, gh.Dir = pt(8, 5), dirDown

	for i := 0; gh.Mode == GhostEaten && i < 20; i++ {
		g.stepGhost(gh)
	}
	if gh.Mode != GhostLeaving || gh.Pos != g.level.House[1] {
		t.Fatalf("ghost at %v mode %d, expected revived in the house", gh.Pos, gh.Mode)
	}
	for i := 0; gh.Mode == GhostLeaving && i < 10; i++ {
		g.stepGhost(gh)
	}
	if gh.Mode != GhostActive || gh.Pos != g.level.Exit {
		t.Errorf("ghost at %v mode %d, expected back outside", gh.Pos, gh.Mode)
	}
}

func TestScatterChaseAlternate(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	tm := g.cfg.Timing
	if !g.scatter {
		t.Fatal("rounds open in scatter mode")
	}

	g.updateMode(tm.Scatter)
	if g.scatter {
		t.Fatal("expected chase after the scatter period")
	}
	if g.ghosts[0].Dir != dirRight {
		t.Error("mode change should reverse roaming ghosts")
	}

	g.frighten()
	g.updateMode(tm.Chase)
	if g.scatter {
		t.Error("mode timer should hold while ghosts are frightened")
	}

	g.Cancel(EffectFrightened)
	g.updateMode(tm.Chase)
	if !g.scatter {
		t.Error("expected scatter after the chase period")
	}
}

func TestChaseForeverAfterScatterWaves(t *testing.T) {
	g, _ := newRunning(t, 1, 1)
	tm := g.cfg.Timing
	for range scatterWaves {
		g.updateMode(tm.Scatter)
		g.updateMode(tm.Chase)
	}
	if g.scatter {
		t.Fatal("ghosts should chase for good")
	}
	g.updateMode(tm.Chase * 10)
	if g.scatter {
		t.Error("no more scatter periods expected")
	}
}

func TestFrightenedExpires(t *testing.T) {
	g, in := newRunning(t, 1, 2)
	g.frighten()

	g.Tick(g.cfg.Timing.Frightened+0.1, in)

	if g.Active(EffectFrightened) {
		t.Fatal("frightened window should have ended")
	}
	for i, gh := range g.ghosts {
		if gh.Frightened {
			t.Errorf("ghost %d still frightened", i)
		}
	}
}

func TestLevelClear(t *testing.T) {
	g, in := newRunning(t, 1, 0)
	g.pellets.Reset()
	g.pellets.Set(8, 15, pelletSmall)

	g.Tick(step(g), in)

	if !g.Phase().Is(core.PhaseTransitioning) {
		t.Fatalf("phase = %v, expected a level transition", g.Phase().Phase())
	}
	if !slices.Contains(g.DrainCues(), core.CueLevelUp) {
		t.Error("expected CueLevelUp")
	}

	g.Phase().Advance(g.cfg.Gameplay.LevelTransition)
	g.FinishTransition()

	if g.Level != 2 {
		t.Errorf("Level = %d, expected 2", g.Level)
	}
	if g.pellets.Count() != g.level.pellets.Count() {
		t.Errorf("pellets = %d, expected a full maze", g.pellets.Count())
	}
	if g.player.Pos != g.level.PlayerStart {
		t.Errorf("player at %v, expected the start", g.player.Pos)
	}
}

func TestLevelsSpeedUp(t *testing.T) {
	g, _ := newRunning(t, 1, 0)
	slow := g.paced(g.cfg.Timing.GhostStep)
	g.Level = 4
	if fast := g.paced(g.cfg.Timing.GhostStep); fast >= slow {
		t.Errorf("level 4 interval %v, expected less than %v", fast, slow)
	}
}

func TestDeterminism(t *testing.T) {
	keys := []string{input.KeyUp, input.KeyLeft, input.KeyDown, input.KeyRight}
	run := func() uint64 {
		g := New()
		g.Reset(core.RuntimeConfig{Seed: 31337, ScreenW: 80, ScreenH: 24})
		g.Phase().Start()
		in := input.NewManager(input.DefaultOptions())
		for i := range 3600 {
			now := t0.Add(time.Duration(i) * 16 * time.Millisecond)
			if i%45 == 0 {
				in.KeyDown(keys[(i/45)%len(keys)], now)
			}
			if g.Phase().Is(core.PhaseTransitioning) {
				if g.Phase().Advance(1.0 / 60) {
					g.FinishTransition()
				}
			} else {
				g.Tick(1.0/60, in)
			}
			in.Update()
			if g.State().GameOver() {
				break
			}
		}
		return kit.HashSnapshot(g.Snapshot())
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and inputs produced different snapshots: %x vs %x", a, b)
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 30, ScreenH: 10})
	g.Phase().Start()
	g.Tick(1, input.NewManager(input.DefaultOptions()))

	g.Render(core.NewScreen(30, 10))
	if g.player.Pos != g.level.PlayerStart {
		t.Error("undersized game should not simulate")
	}
}
