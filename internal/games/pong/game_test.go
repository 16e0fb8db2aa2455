package pong

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
)

func newRunning(t *testing.T, seed int64) (*Game, *input.Manager) {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	if !g.Phase().Start() {
		t.Fatal("could not start round")
	}
	return g, input.NewManager(input.DefaultOptions())
}

// inPlay skips the serve delay and places the ball.
func inPlay(g *Game, pos, vel core.Vec) {
	g.serveIn = 0
	g.ball.Pos = pos
	g.ball.Vel = vel
	g.speed = vel.Len()
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		g, in := newRunning(t, 2024)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range 1800 {
			if i%200 < 60 {
				in.KeyDown(input.KeyUp, now)
			} else {
				in.KeyUp(input.KeyUp)
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

func TestServeDelay(t *testing.T) {
	g, in := newRunning(t, 1)

	g.Tick(g.cfg.Gameplay.ServeDelay/2, in)
	if g.ball.Vel != (core.Vec{}) {
		t.Fatal("ball should wait for the serve")
	}
	g.Tick(g.cfg.Gameplay.ServeDelay, in)
	if g.ball.Vel.X >= 0 {
		t.Errorf("first serve should head toward the player, vel = %+v", g.ball.Vel)
	}
	if g.Snapshot().Serving {
		t.Error("ball should be in play")
	}
}

func TestCPUAimsAtProjectedPosition(t *testing.T) {
	g, _ := newRunning(t, 1)
	g.cfg.CPU.Reaction = 1

	inPlay(g, core.V(40, 10), core.V(20, 10))
	g.updateCPU(0)
	want := 10 + 10*g.cfg.CPU.Lookahead
	if math.Abs(g.cpuAimY-want) > 1e-9 {
		t.Errorf("cpuAimY = %v, expected ball.y + vy*lookahead = %v", g.cpuAimY, want)
	}

	// Ball heading away: the CPU drifts back to the middle.
	inPlay(g, core.V(40, 10), core.V(-20, 10))
	g.updateCPU(0)
	if _, cy := g.field.Center(); g.cpuAimY != cy {
		t.Errorf("cpuAimY = %v, expected field center %v", g.cpuAimY, cy)
	}
}

func TestCPUReactionGate(t *testing.T) {
	g, _ := newRunning(t, 1)
	g.cfg.CPU.Reaction = 0
	before := g.cpuAimY

	inPlay(g, core.V(40, 3), core.V(20, -10))
	for range 100 {
		g.updateCPU(1.0 / 60)
	}
	if g.cpuAimY != before {
		t.Errorf("CPU reacted with a zero reaction chance: aim %v -> %v", before, g.cpuAimY)
	}
}

func TestPaddleReturnSpeedSaturates(t *testing.T) {
	g, in := newRunning(t, 1)
	left, _ := g.paddleRects()
	_, cy := left.Center()
	maxSpeed := g.cfg.Physics.MaxBallSpeed

	inPlay(g, core.V(left.Right()+2, cy), core.V(-(maxSpeed - 1), 0))
	g.Tick(0.05, in)

	if g.ball.Vel.X <= 0 {
		t.Fatalf("ball should be returned, vel = %+v", g.ball.Vel)
	}
	if g.speed != maxSpeed {
		t.Errorf("speed = %v, expected it to saturate at %v", g.speed, maxSpeed)
	}
	if math.Abs(g.ball.Vel.Y) > 1e-9 {
		t.Errorf("center hit should leave horizontally, vy = %v", g.ball.Vel.Y)
	}
	if g.returns != 1 || g.Score != returnScore {
		t.Errorf("returns=%d score=%d, expected 1/%d", g.returns, g.Score, returnScore)
	}
}

func TestFastBallDoesNotTunnelThroughPaddle(t *testing.T) {
	g, in := newRunning(t, 1)
	left, _ := g.paddleRects()
	_, cy := left.Center()

	// 400 cells/s over a clamped 250ms frame would skip the paddle entirely.
	inPlay(g, core.V(left.Right()+20, cy), core.V(-400, 0))
	g.Tick(0.25, in)

	if g.ball.Vel.X <= 0 {
		t.Errorf("ball tunneled through the paddle: pos %+v vel %+v", g.ball.Pos, g.ball.Vel)
	}
	if g.cpuPts != 0 {
		t.Error("no point should be scored")
	}
}

func TestWinningPointEndsMatch(t *testing.T) {
	g, in := newRunning(t, 1)
	g.playerPts = g.cfg.Gameplay.WinScore - 1

	inPlay(g, core.V(g.field.Right()+1, 12), core.V(30, 0))
	g.Tick(1.0/60, in)

	if !g.State().GameOver() {
		t.Fatalf("phase = %v, expected GameOver", g.Phase().Phase())
	}
	if g.winner != SidePlayer {
		t.Errorf("winner = %v, expected player", g.winner)
	}
	if g.Score != pointScore {
		t.Errorf("Score = %d, expected %d", g.Score, pointScore)
	}
}

func TestCPUPointServesTowardCPU(t *testing.T) {
	g, in := newRunning(t, 1)

	inPlay(g, core.V(-2, 12), core.V(-30, 0))
	g.Tick(1.0/60, in)

	if g.cpuPts != 1 {
		t.Fatalf("cpuPts = %d, expected 1", g.cpuPts)
	}
	if g.serveDir != 1 {
		t.Errorf("serveDir = %d, expected the next serve toward the CPU", g.serveDir)
	}
}
