package snake

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

func newRunning(t *testing.T, seed int64) (*Game, *input.Manager) {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	if !g.Phase().Start() {
		t.Fatal("could not start round")
	}
	return g, input.NewManager(input.DefaultOptions())
}

func press(in *input.Manager, key string, ms int) {
	in.KeyDown(key, t0.Add(time.Duration(ms)*time.Millisecond))
	in.KeyUp(key)
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		g, in := newRunning(t, 12345)
		for i := range 900 {
			switch i {
			case 30:
				press(in, input.KeyDown, i*16)
			case 90:
				press(in, input.KeyLeft, i*16)
			case 200:
				press(in, input.KeyUp, i*16)
			case 320:
				press(in, input.KeyRight, i*16)
			}
			g.Tick(1.0/60, in)
			in.Update()
		}
		return kit.HashSnapshot(g.Snapshot())
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and inputs produced different snapshots: %x vs %x", a, b)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, in := newRunning(t, 42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	press(in, input.KeyLeft, 0)
	g.Tick(0.001, in)
	if g.nextDir != DirRight {
		t.Errorf("reversal should be ignored, nextDir = %v", g.nextDir)
	}

	press(in, input.KeyDown, 1)
	g.Tick(0.001, in)
	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
	if g.direction != DirRight {
		t.Errorf("direction must not change before the step, got %v", g.direction)
	}
}

func TestDirectionBufferedUntilStep(t *testing.T) {
	g, in := newRunning(t, 7)
	head := g.snake[0]

	// Up then down inside one step: both are orthogonal, the last wins.
	press(in, input.KeyUp, 0)
	press(in, input.KeyDown, 10)
	press(in, input.KeyLeft, 20)
	g.Tick(0.01, in)

	if g.direction != DirRight || g.nextDir != DirDown {
		t.Fatalf("direction=%v nextDir=%v, expected right/down before the step", g.direction, g.nextDir)
	}

	g.Tick(g.stepInterval(), in)
	if g.direction != DirDown {
		t.Errorf("direction after step = %v, expected down", g.direction)
	}
	if want := head.Add(physics.Point{X: 0, Y: 1}); g.snake[0] != want {
		t.Errorf("head = %+v, expected %+v", g.snake[0], want)
	}
}

func TestSwipeSteers(t *testing.T) {
	g, in := newRunning(t, 7)

	in.TouchStart(10, 10, t0)
	in.TouchEnd(10, 2, t0.Add(100*time.Millisecond))
	g.Tick(0.001, in)

	if g.nextDir != DirUp {
		t.Errorf("swipe up should buffer DirUp, got %v", g.nextDir)
	}
}

func TestReverseControls(t *testing.T) {
	g, in := newRunning(t, 7)
	g.Trigger(EffectReverse, 5)

	press(in, input.KeyUp, 0)
	g.Tick(0.001, in)
	if g.nextDir != DirDown {
		t.Errorf("reversed up should buffer DirDown, got %v", g.nextDir)
	}
}

func TestEatGrowsAndScores(t *testing.T) {
	g, in := newRunning(t, 99)
	n := len(g.snake)
	g.food = g.snake[0].Add(physics.Point{X: 1, Y: 0})

	g.Tick(g.stepInterval(), in)
	if g.Score != g.cfg.Gameplay.FoodPoints {
		t.Errorf("Score = %d, expected %d", g.Score, g.cfg.Gameplay.FoodPoints)
	}
	if g.foodEaten != 1 {
		t.Errorf("foodEaten = %d, expected 1", g.foodEaten)
	}
	if !slices.Contains(g.DrainCues(), core.CueEat) {
		t.Error("eating should emit CueEat")
	}

	g.Tick(g.stepInterval(), in)
	if len(g.snake) != n+1 {
		t.Errorf("length = %d, expected %d after growing", len(g.snake), n+1)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g, _ := newRunning(t, 999)
	g.obstacles.Set(3, 3, obstacle)

	for range 100 {
		g.spawnFood()
		if !g.obstacles.Empty(g.food.X, g.food.Y) {
			t.Fatalf("food spawned on an obstacle or out of bounds at %+v", g.food)
		}
		if g.isSnakeAt(g.food) {
			t.Fatalf("food spawned on snake at %+v", g.food)
		}
	}
}

func TestWallCollisionCostsLife(t *testing.T) {
	g, in := newRunning(t, 5)
	y := g.height / 2
	g.snake = []physics.Point{{X: g.width - 1, Y: y}, {X: g.width - 2, Y: y}, {X: g.width - 3, Y: y}}

	g.Tick(g.stepInterval(), in)

	if g.Lives != g.cfg.Gameplay.Lives-1 {
		t.Errorf("Lives = %d, expected %d", g.Lives, g.cfg.Gameplay.Lives-1)
	}
	if !g.Phase().Is(core.PhaseTransitioning) {
		t.Errorf("phase = %v, expected a respawn transition", g.Phase().Phase())
	}
	if g.snake[0].X >= g.width-1 {
		t.Error("snake should respawn away from the wall")
	}
}

func TestLastLifeEndsRound(t *testing.T) {
	g, in := newRunning(t, 5)
	g.Lives = 1
	y := g.height / 2
	g.snake = []physics.Point{{X: g.width - 1, Y: y}, {X: g.width - 2, Y: y}}

	g.Tick(g.stepInterval(), in)

	if !g.State().GameOver() {
		t.Fatalf("phase = %v, expected GameOver", g.Phase().Phase())
	}
	if !slices.Contains(g.DrainCues(), core.CueGameOver) {
		t.Error("game over should emit CueGameOver")
	}
}

func TestShieldPassesThroughBody(t *testing.T) {
	g, in := newRunning(t, 5)
	g.Trigger(EffectShield, 5)
	// A hooked snake whose next step lands on its own body.
	g.snake = []physics.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 7, Y: 5}}
	g.direction, g.nextDir = DirRight, DirRight
	g.food = physics.Point{X: -1, Y: -1}

	g.Tick(g.stepInterval(), in)

	if g.Lives != g.cfg.Gameplay.Lives {
		t.Error("shielded snake should not lose a life")
	}
	if g.snake[0] != (physics.Point{X: 6, Y: 5}) {
		t.Errorf("head = %+v, expected to move onto the body cell", g.snake[0])
	}
}

func TestPowerUpExpires(t *testing.T) {
	g, in := newRunning(t, 5)
	g.food = physics.Point{X: -1, Y: -1}
	base := g.stepInterval()
	g.Trigger(EffectSpeed, 0.05)

	if g.stepInterval() >= base {
		t.Error("speed effect should shorten the step interval")
	}
	g.Tick(0.04, in)
	if !g.Active(EffectSpeed) {
		t.Error("effect expired early")
	}
	g.Tick(0.02, in)
	if g.Active(EffectSpeed) {
		t.Error("effect should revert after its duration")
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 10, ScreenH: 5})
	g.Phase().Start()
	g.Tick(1, input.NewManager(input.DefaultOptions()))

	scr := core.NewScreen(10, 5)
	g.Render(scr)
	if g.steps != 0 {
		t.Error("undersized game should not simulate")
	}
}
