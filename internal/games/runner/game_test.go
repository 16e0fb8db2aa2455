package runner

import (
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newRunning starts a round with no coins or rocks spawning so tests place
// their own.
func newRunning(t *testing.T, seed int64) (*Game, *input.Manager) {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	g.cfg.Gameplay.CoinChance = 0
	g.cfg.Gameplay.ObstacleChance = 0
	if !g.Phase().Start() {
		t.Fatal("could not start round")
	}
	return g, input.NewManager(input.DefaultOptions())
}

func TestTunnelPassageStaysOpen(t *testing.T) {
	tests := []struct {
		name  string
		gap   float64
		slope float64
	}{
		{"wide", 12, 1},
		{"narrow", 4, 1},
		{"steep", 8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := newTunnel(2, 23, tt.gap, tt.slope, 10)
			got := tun.Extend(2000, tt.gap, rand.New(rand.NewSource(7)))
			if len(got) != 2000 {
				t.Fatalf("generated %d slices, expected 2000", len(got))
			}
			for i, s := range got {
				if s.Top < 2 || s.Bottom > 23 {
					t.Fatalf("slice %d passage %v..%v leaves the bounds", i, s.Top, s.Bottom)
				}
				if s.Gap() != tt.gap {
					t.Fatalf("slice %d gap = %v, expected %v", i, s.Gap(), tt.gap)
				}
				if i == 0 {
					continue
				}
				prev := got[i-1]
				if open := math.Min(s.Bottom, prev.Bottom) - math.Max(s.Top, prev.Top); open < 2 {
					t.Fatalf("slices %d and %d share only %v open rows", i-1, i, open)
				}
			}
		})
	}
}

func TestTunnelGapNarrowsGradually(t *testing.T) {
	tun := newTunnel(2, 23, 12, 1, 10)
	rng := rand.New(rand.NewSource(1))
	tun.Extend(5, 12, rng)
	got := tun.Extend(15, 6, rng)

	for i, want := range []float64{11, 10, 9, 8, 7, 6, 6} {
		if got[i].Gap() != want {
			t.Errorf("slice %d gap = %v, expected %v", i, got[i].Gap(), want)
		}
	}
}

func TestTunnelScroll(t *testing.T) {
	tun := newTunnel(2, 23, 8, 1, 10)
	tun.Extend(10, 8, rand.New(rand.NewSource(1)))

	tun.Scroll(3.5)

	if n := len(tun.Slices()); n != 7 {
		t.Fatalf("%d slices left, expected 7", n)
	}
	if x := tun.Slices()[0].X; x != -0.5 {
		t.Errorf("first slice at x=%v, expected -0.5", x)
	}
	if _, ok := tun.At(0); !ok {
		t.Error("column 0 should still be covered")
	}
}

func TestShipStartsInPassage(t *testing.T) {
	g, _ := newRunning(t, 3)
	s, ok := g.tunnel.At(g.shipX + shipW/2)
	if !ok {
		t.Fatal("no slice under the ship")
	}
	if g.shipY < s.Top || g.shipY+shipH > s.Bottom {
		t.Errorf("ship at y=%v outside passage %v..%v", g.shipY, s.Top, s.Bottom)
	}
}

func TestGravityAndThrust(t *testing.T) {
	g, in := newRunning(t, 1)
	y := g.shipY

	g.Tick(0.05, in)
	if g.shipVY <= 0 || g.shipY <= y {
		t.Fatalf("without thrust vy=%v y=%v, expected the ship to fall from %v", g.shipVY, g.shipY, y)
	}

	in.KeyDown(input.KeySpace, t0)
	g.Tick(0.05, in)
	g.Tick(0.05, in)
	if g.shipVY >= 0 {
		t.Errorf("with thrust vy = %v, expected the ship to climb", g.shipVY)
	}
	if !g.thrusting {
		t.Error("thrusting flag should be set")
	}
}

func TestVerticalSpeedClamped(t *testing.T) {
	g, in := newRunning(t, 1)

	g.shipVY = 1000
	g.Tick(0.001, in)
	if g.shipVY != g.cfg.Physics.MaxFallSpeed {
		t.Errorf("fall speed = %v, expected %v", g.shipVY, g.cfg.Physics.MaxFallSpeed)
	}

	in.KeyDown(input.KeySpace, t0)
	g.shipVY = -1000
	g.Tick(0.001, in)
	if g.shipVY != -g.cfg.Physics.MaxRiseSpeed {
		t.Errorf("rise speed = %v, expected %v", g.shipVY, -g.cfg.Physics.MaxRiseSpeed)
	}
}

func TestWallCrashCostsLife(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	s, _ := g.tunnel.At(g.shipX + shipW/2)
	g.shipY = s.Top - 0.5

	g.Tick(0.001, in)

	if g.Lives != g.cfg.Gameplay.Lives-1 {
		t.Fatalf("Lives = %d, expected %d", g.Lives, g.cfg.Gameplay.Lives-1)
	}
	if !g.Active(EffectInvuln) {
		t.Error("crash should grant invulnerability")
	}
	if !slices.Contains(g.DrainCues(), core.CueLifeLost) {
		t.Error("expected CueLifeLost")
	}

	// Still invulnerable: a second scrape is free.
	g.shipY = s.Top - 0.5
	g.Tick(0.001, in)
	if g.Lives != g.cfg.Gameplay.Lives-1 {
		t.Errorf("Lives = %d, invulnerable ship should not crash", g.Lives)
	}
}

func TestInvulnerabilityExpires(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.Trigger(EffectInvuln, 0.5)

	g.Tick(0.3, in)
	if !g.Active(EffectInvuln) {
		t.Fatal("invulnerability ended early")
	}
	g.Tick(0.3, in)
	if g.Active(EffectInvuln) {
		t.Error("invulnerability should have expired")
	}
}

func TestLastLifeEndsRound(t *testing.T) {
	g, in := newRunning(t, 1)
	g.Lives = 1
	s, _ := g.tunnel.At(g.shipX + shipW/2)
	g.shipY = s.Bottom

	g.Tick(0.001, in)

	if !g.State().GameOver() {
		t.Errorf("phase = %v, expected GameOver", g.Phase().Phase())
	}
}

func TestCoinScores(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.coins = []core.Vec{core.V(g.shipX+1, g.shipY)}

	g.Tick(0.001, in)

	if g.Score != g.cfg.Gameplay.CoinPoints {
		t.Errorf("Score = %d, expected %d", g.Score, g.cfg.Gameplay.CoinPoints)
	}
	if len(g.coins) != 0 {
		t.Error("coin should be collected")
	}
}

func TestRockCrash(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.rocks = []core.Vec{core.V(g.shipX+1, g.shipY)}

	g.Tick(0.001, in)

	if g.Lives != g.cfg.Gameplay.Lives-1 {
		t.Errorf("Lives = %d, expected a crash", g.Lives)
	}
	if len(g.rocks) != 0 {
		t.Error("rock should be destroyed by the crash")
	}
}

func TestBombClearsRocksOnScreen(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.rocks = []core.Vec{core.V(50, 10), core.V(60, 12), core.V(200, 10)}

	in.KeyDown(input.KeyBomb, t0)
	g.Tick(0.001, in)

	if len(g.rocks) != 1 {
		t.Errorf("%d rocks left, expected only the one off screen", len(g.rocks))
	}
	if g.bombs != g.cfg.Gameplay.Bombs-1 {
		t.Errorf("bombs = %d, expected %d", g.bombs, g.cfg.Gameplay.Bombs-1)
	}
	if g.Score != 2*g.cfg.Gameplay.ObstaclePoints {
		t.Errorf("Score = %d, expected %d", g.Score, 2*g.cfg.Gameplay.ObstaclePoints)
	}
}

func TestSwipeDownDropsBomb(t *testing.T) {
	tests := []struct {
		name  string
		dy    float64
		bombs int // bombs used
	}{
		{"swipe down", 8, 1},
		{"swipe up", -8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, in := newRunning(t, 1)
			g.cfg.Physics.Gravity = 0
			g.rocks = []core.Vec{core.V(50, 10)}

			in.TouchStart(40, 10, t0)
			in.TouchEnd(40, 10+tt.dy, t0.Add(100*time.Millisecond))
			g.Tick(0.001, in)

			if used := g.cfg.Gameplay.Bombs - g.bombs; used != tt.bombs {
				t.Errorf("%d bombs used, expected %d", used, tt.bombs)
			}
			if left := len(g.rocks); left != 1-tt.bombs {
				t.Errorf("%d rocks left, expected %d", left, 1-tt.bombs)
			}
		})
	}
}

func TestNoBombsLeft(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.bombs = 0
	g.rocks = []core.Vec{core.V(50, 10)}

	in.KeyDown(input.KeyBomb, t0)
	g.Tick(0.001, in)

	if len(g.rocks) != 1 {
		t.Error("rock should survive without bombs")
	}
}

func TestDistanceScoring(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0

	for range 10 {
		g.Tick(0.05, in)
	}

	if g.distance <= 0 {
		t.Fatal("ship did not advance")
	}
	want := int(g.distance/10) * g.cfg.Gameplay.DistancePoints
	if g.Score != want {
		t.Errorf("Score = %d after %.1f cells, expected %d", g.Score, g.distance, want)
	}
}

func TestDifficultyScalesWithDistance(t *testing.T) {
	g, _ := newRunning(t, 1)
	speed, gap := g.speed(), g.gapSize()

	g.distance = g.cfg.Difficulty.Progression.MaxAt
	if g.speed() <= speed {
		t.Errorf("speed %v at max distance, expected more than %v", g.speed(), speed)
	}
	if g.gapSize() >= gap {
		t.Errorf("gap %v at max distance, expected less than %v", g.gapSize(), gap)
	}
	if g.gapSize() < float64(g.cfg.Tunnel.MinGap) {
		t.Errorf("gap %v below the minimum %d", g.gapSize(), g.cfg.Tunnel.MinGap)
	}
}

func TestLevelUpByDistance(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cfg.Physics.Gravity = 0
	g.distance = levelDistance - 0.01
	g.awarded = int(g.distance/10) * g.cfg.Gameplay.DistancePoints

	g.Tick(0.01, in)

	if g.Level != 2 {
		t.Errorf("Level = %d, expected 2", g.Level)
	}
	if !slices.Contains(g.DrainCues(), core.CueLevelUp) {
		t.Error("expected CueLevelUp")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		g := New()
		g.Reset(core.RuntimeConfig{Seed: 4242, ScreenW: 80, ScreenH: 24})
		g.Phase().Start()
		in := input.NewManager(input.DefaultOptions())
		for i := range 1800 {
			now := t0.Add(time.Duration(i) * 16 * time.Millisecond)
			if i%30 < 14 {
				in.KeyDown(input.KeySpace, now)
			} else {
				in.KeyUp(input.KeySpace)
			}
			if i%400 == 0 {
				in.KeyDown(input.KeyBomb, now)
				in.KeyUp(input.KeyBomb)
			}
			g.Tick(1.0/60, in)
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
	if g.distance != 0 {
		t.Error("undersized game should not simulate")
	}
}
