// Package pong implements a classic Pong game with CPU opponent.
// The player controls the left paddle, the CPU controls the right paddle.
package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

const (
	ballRadius  = 0.5
	paddleWidth = 1.0
	minWidth    = 30
	minHeight   = 12

	pointScore  = 100 // per point won
	returnScore = 10  // per ball returned by the player
)

// Side identifies a player.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideCPU
)

// Game implements the Pong game logic.
type Game struct {
	kit.Base

	cfg        config.PongConfig
	difficulty *config.DifficultyManager

	field    core.Rect // playable area below the HUD row
	tooSmall bool

	paddleH  float64
	playerY  float64 // top of the player's paddle
	cpuY     float64 // top of the CPU's paddle
	cpuAimY  float64 // last target the CPU reacted to
	ball     physics.Ball
	speed    float64
	serveIn  float64 // seconds until the ball is served, 0 when in play
	serveDir int

	playerPts int
	cpuPts    int
	winner    Side
	returns   int
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadPong()
	g.ResetBase(runtime, 0)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tooSmall = runtime.ScreenW < minWidth || runtime.ScreenH < minHeight
	g.field = core.NewRect(0, 1, float64(runtime.ScreenW), float64(runtime.ScreenH-1))

	// Paddles never take more than a third of the field.
	g.paddleH = math.Min(float64(g.cfg.Paddles.Height), math.Floor(g.field.H/3))
	g.paddleH = math.Max(g.paddleH, 2)
	_, cy := g.field.Center()
	g.playerY = cy - g.paddleH/2
	g.cpuY = g.playerY
	g.cpuAimY = cy

	g.playerPts = 0
	g.cpuPts = 0
	g.winner = SideNone
	g.returns = 0

	g.serve(-1)
}

// serve centers the ball and arms the serve timer. The ball heads toward
// dir (-1 player, +1 CPU).
func (g *Game) serve(dir int) {
	cx, cy := g.field.Center()
	g.ball = physics.Ball{Pos: core.V(cx, cy), Radius: ballRadius}
	g.serveDir = dir
	g.serveIn = g.cfg.Gameplay.ServeDelay
	if g.serveIn <= 0 {
		g.launch()
	}
}

// launch puts the ball in play at a random shallow angle.
func (g *Game) launch() {
	g.serveIn = 0
	g.speed = g.difficulty.Speed(g.cfg.Physics.BallSpeed, 0, g.Clock)
	angle := (g.Rng.Float64() - 0.5) * 0.6
	g.ball.Vel = physics.HorizontalLaunch(angle, g.speed, g.serveDir)
}

// paddleRects returns the player and CPU paddle rectangles.
func (g *Game) paddleRects() (core.Rect, core.Rect) {
	off := float64(g.cfg.Paddles.Offset)
	left := core.NewRect(off, g.playerY, paddleWidth, g.paddleH)
	right := core.NewRect(g.field.Right()-off-paddleWidth, g.cpuY, paddleWidth, g.paddleH)
	return left, right
}

// clampPaddle keeps a paddle top inside the field.
func (g *Game) clampPaddle(y float64) float64 {
	return core.ClampF(y, g.field.Y, g.field.Bottom()-g.paddleH)
}

// Tick advances the game by dt seconds: paddles first, then the ball
// against paddles and walls, then scoring.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)

	g.playerY = g.clampPaddle(g.playerY + in.AxisY()*g.cfg.Physics.PaddleSpeed*dt)
	g.updateCPU(dt)

	if g.serveIn > 0 {
		g.serveIn -= dt
		if g.serveIn <= 0 {
			g.launch()
		}
		return
	}
	g.updateBall(dt)
}

// updateCPU moves the CPU paddle toward where the ball will be after the
// lookahead. The aim is only refreshed when the reaction roll succeeds, so
// the CPU lags behind sudden changes.
func (g *Game) updateCPU(dt float64) {
	cpu := g.cfg.CPU
	if g.Chance(cpu.Reaction) {
		_, cy := g.field.Center()
		if g.ball.Vel.X > 0 {
			cy = g.ball.Pos.Y + g.ball.Vel.Y*cpu.Lookahead
		}
		g.cpuAimY = core.ClampF(cy, g.field.Y, g.field.Bottom())
	}

	diff := g.cpuAimY - (g.cpuY + g.paddleH/2)
	if math.Abs(diff) <= cpu.Deadband {
		return
	}
	step := g.difficulty.Speed(cpu.Speed, 0, g.Clock) * dt
	if step > math.Abs(diff) {
		step = math.Abs(diff)
	}
	g.cpuY = g.clampPaddle(g.cpuY + math.Copysign(step, diff))
}

// updateBall sweeps the ball through the paddles, reflects it off the top
// and bottom walls and awards a point when it leaves the field.
func (g *Game) updateBall(dt float64) {
	left, right := g.paddleRects()
	sw := physics.SweepBall(g.ball, dt, []core.Rect{left, right})
	g.ball.Pos, g.ball.Vel = sw.Pos, sw.Vel

	if sw.Struck() {
		paddle, dir := left, 1
		if sw.Hit == 1 {
			paddle, dir = right, -1
		}
		if sw.Axis == physics.AxisX {
			g.paddleReturn(paddle, dir, sw.Hit == 0)
		}
		g.Emit(core.CueBounce)
	}

	var walls physics.Side
	g.ball.Pos, g.ball.Vel, walls = physics.ReflectInBounds(
		g.ball.Pos, g.ball.Vel, g.ball.Radius, g.field, physics.SideTop|physics.SideBottom)
	if walls != physics.SideNone {
		g.Emit(core.CueBounce)
	}

	g.Trail(g.ball.Pos, g.ball.Vel, core.ColorWhite)

	switch out := physics.Escaped(g.ball.Pos, g.ball.Radius, g.field); {
	case out.Has(physics.SideLeft):
		g.point(SideCPU)
	case out.Has(physics.SideRight):
		g.point(SidePlayer)
	}
}

// paddleReturn sends the ball back at an angle set by where it struck the
// paddle, a little faster than before.
func (g *Game) paddleReturn(paddle core.Rect, dir int, byPlayer bool) {
	ph := g.cfg.Physics
	_, cy := paddle.Center()
	angle, speed := physics.PaddleBounce(
		g.ball.Pos.Y-cy, paddle.H/2,
		ph.MaxBounceAngle*math.Pi/180,
		g.speed, ph.SpeedUpPerHit, ph.MaxBallSpeed)
	g.speed = speed
	g.ball.Vel = physics.HorizontalLaunch(angle, speed, dir)

	x := paddle.Right()
	if dir < 0 {
		x = paddle.X
	}
	g.Burst(core.V(x, g.ball.Pos.Y), core.ColorCyan, 6, 6)
	if byPlayer {
		g.returns++
		g.Score += returnScore
	}
}

// point records a point for side and either serves again or ends the match.
func (g *Game) point(side Side) {
	g.Emit(core.CueScore)
	g.Explode(g.ball.Pos, core.ColorYellow, 16)

	// The next serve heads toward whoever won the point.
	serveDir := 1
	if side == SidePlayer {
		g.playerPts++
		g.Score += pointScore
		serveDir = -1
	} else {
		g.cpuPts++
	}

	if g.playerPts >= g.cfg.Gameplay.WinScore || g.cpuPts >= g.cfg.Gameplay.WinScore {
		g.winner = side
		g.GameOver()
		return
	}
	g.serve(serveDir)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, minWidth, minHeight)
		return
	}

	centerX := float64(dst.Width() / 2)
	net := core.Solid(NetChar, core.ColorGray)
	for y := int(g.field.Y); y < int(g.field.Bottom()); y += 2 {
		dst.Text(int(centerX), y, string(NetChar), net)
	}

	left, right := g.paddleRects()
	grad := core.NewGradient(core.ColorCyan, core.ColorBlue)
	grad.Vertical = true
	dst.FillRect(left, core.Glowing(PaddleChar, core.ColorCyan).WithGradient(grad))
	dst.FillRect(right, core.Solid(PaddleChar, core.ColorPink))

	// Blink during serve
	if g.serveIn <= 0 || int(g.serveIn*6)%2 == 0 {
		dst.FillCircle(g.ball.Pos.X, g.ball.Pos.Y, 0, core.Glowing(BallChar, core.ColorWhite))
	}

	kit.DrawHUD(dst, 0, fmt.Sprintf("P1 %d", g.playerPts), fmt.Sprintf("Score: %d", g.Score), fmt.Sprintf("CPU %d", g.cpuPts))

	if g.Phase().Is(core.PhaseGameOver) {
		msg := "CPU WINS!"
		if g.winner == SidePlayer {
			msg = "YOU WIN!"
		}
		kit.DrawCenteredBox(dst, msg,
			fmt.Sprintf("%d - %d  |  Press R to restart", g.playerPts, g.cpuPts), core.ColorYellow)
		return
	}
	g.RenderOverlay(dst, "PONG")
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
