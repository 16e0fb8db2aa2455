package breakout

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

const (
	ballRadius   = 0.5
	paddleHeight = 1.0
)

// Paddle is the player's bat. X is the center.
type Paddle struct {
	X     float64
	Y     float64
	Width float64
}

// Rect returns the paddle's collision box.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X-p.Width/2, p.Y, p.Width, paddleHeight)
}

// paddleWidth returns the current paddle width, widened while the wide
// effect runs and never wider than half the field.
func (g *Game) paddleWidth() float64 {
	w := float64(g.cfg.Paddle.Width)
	if g.Active(EffectWide) {
		w += float64(g.cfg.Paddle.WideBonus)
	}
	return math.Min(w, g.field.W/2)
}

func (g *Game) paddleRect() core.Rect {
	return g.paddle.Rect()
}

// clampPaddle keeps the paddle inside the side walls.
func (g *Game) clampPaddle() {
	g.paddle.Width = g.paddleWidth()
	half := g.paddle.Width / 2
	g.paddle.X = core.ClampF(g.paddle.X, g.field.X+half, g.field.Right()-half)
}

// stickBall parks the ball on top of the paddle until the next launch.
func (g *Game) stickBall() {
	g.stuck = true
	g.ball = physics.Ball{
		Pos:    core.V(g.paddle.X, g.paddle.Y-ballRadius),
		Radius: ballRadius,
	}
	g.speed = 0
}

// launch releases a stuck ball upward at a small random angle.
func (g *Game) launch() {
	g.stuck = false
	g.speed = g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.Score, g.Clock)
	angle := (g.Rng.Float64() - 0.5) * 0.6
	g.ball.Vel = physics.VerticalLaunch(angle, g.speed)
	g.Emit(core.CueBounce)
}

// speedFactor scales ball movement while the slow effect runs.
func (g *Game) speedFactor() float64 {
	if g.Active(EffectSlow) {
		return slowFactor
	}
	return 1
}

// obstacles returns the sweep targets: the paddle first, then every
// standing brick. idx maps sweep indices past the paddle to g.bricks.
func (g *Game) obstacles() (rects []core.Rect, idx []int) {
	rects = append(rects, g.paddleRect())
	idx = append(idx, -1)
	for i := range g.bricks {
		if g.bricks[i].Alive() {
			rects = append(rects, g.bricks[i].Rect)
			idx = append(idx, i)
		}
	}
	return rects, idx
}

// bounceOffPaddle redirects a ball that landed on the paddle's top face.
// The exit angle follows the impact offset from the center.
func (g *Game) bounceOffPaddle() {
	ph := g.cfg.Physics
	p := g.paddleRect()
	cx, _ := p.Center()
	angle, speed := physics.PaddleBounce(
		g.ball.Pos.X-cx, p.W/2,
		ph.MaxBounceAngle*math.Pi/180,
		g.speed, ph.SpeedUpPerHit, ph.MaxBallSpeed)
	g.speed = speed
	g.ball.Vel = physics.VerticalLaunch(angle, speed)
	g.ball.Pos.Y = p.Y - g.ball.Radius
}
