package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar  = '▀'
	BallChar    = '●'
	BorderHoriz = '─'
)

const (
	minWidth  = 30
	minHeight = 16

	hudHeight   = 2
	wallMargin  = 1 // empty columns between the side walls and the bricks
	minPlayRoom = 6 // rows kept free between the wall and the paddle
)

// Game implements the Breakout game logic.
type Game struct {
	kit.Base

	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager

	field    core.Rect // playable area below the HUD
	tooSmall bool

	bricks  []Brick
	paddle  Paddle
	ball    physics.Ball
	speed   float64 // nominal ball speed, before the slow effect
	stuck   bool    // ball waits on the paddle for a launch
	pickups []Pickup

	hits    int // brick hits this round
	cleared int // walls cleared this round
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadBreakout()
	g.ResetBase(runtime, g.cfg.Gameplay.Lives)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tooSmall = runtime.ScreenW < minWidth || runtime.ScreenH < minHeight
	g.field = core.NewRect(0, hudHeight, float64(runtime.ScreenW), float64(runtime.ScreenH-hudHeight))

	g.paddle = Paddle{Y: g.field.Bottom() - 2}
	g.paddle.X, _ = g.field.Center()
	g.clampPaddle()

	g.pickups = nil
	g.hits = 0
	g.cleared = 0
	g.buildLevel()
	g.stickBall()
}

// buildLevel lays out a fresh wall for the current level.
func (g *Game) buildLevel() {
	top := g.field.Y + float64(g.cfg.Bricks.TopGap)
	rows := rowsFor(g.cfg.Bricks.BaseRows, g.Level, g.cfg.Bricks.MaxRows)
	if fit := int(g.paddle.Y - top - minPlayRoom); rows > fit {
		rows = core.Max(fit, 1)
	}
	left := g.field.X + wallMargin
	g.bricks = buildWall(rows, g.cfg.Bricks.Columns, left, top, g.field.W-2*wallMargin)
}

// bricksLeft counts standing bricks.
func (g *Game) bricksLeft() int {
	n := 0
	for i := range g.bricks {
		if g.bricks[i].Alive() {
			n++
		}
	}
	return n
}

// Tick advances the game by dt seconds: effects expire, the paddle moves,
// then the ball sweeps through paddle and bricks and bounces off the walls,
// and finally falling pickups are caught or lost.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)
	g.ExpireEffects()

	launch := g.movePaddle(dt, in)
	if g.stuck {
		g.ball.Pos = core.V(g.paddle.X, g.paddle.Y-g.ball.Radius)
		if launch {
			g.launch()
		}
	} else {
		g.updateBall(dt)
	}

	if g.Phase().Is(core.PhaseRunning) {
		g.updatePickups(dt)
	}
}

// movePaddle applies keyboard, gamepad and tap input to the paddle. It
// reports whether the player asked to launch.
func (g *Game) movePaddle(dt float64, in *input.Manager) bool {
	launch := in.AnyJustPressed(input.KeySpace, input.KeyUp)

	g.paddle.X += in.AxisX() * g.cfg.Physics.PaddleSpeed * dt
	if gs := in.ConsumeGesture(); gs.Type == input.GestureTap {
		g.paddle.X = gs.X
		launch = true
	}
	g.clampPaddle()
	return launch
}

// updateBall moves the ball one frame. Paddle contact takes priority over
// bricks; a brick struck this frame stops the sweep at its face.
func (g *Game) updateBall(dt float64) {
	rects, idx := g.obstacles()
	f := g.speedFactor()

	moving := g.ball
	moving.Vel = moving.Vel.Scale(f)
	sw := physics.SweepBall(moving, dt, rects)
	g.ball.Pos = sw.Pos
	g.ball.Vel = sw.Vel.Scale(1 / f)

	if sw.Struck() {
		if i := idx[sw.Hit]; i >= 0 {
			g.hitBrick(i)
		} else {
			if sw.Axis == physics.AxisY && g.ball.Vel.Y < 0 {
				g.bounceOffPaddle()
			}
			g.Emit(core.CueBounce)
		}
	}

	var walls physics.Side
	g.ball.Pos, g.ball.Vel, walls = physics.ReflectInBounds(
		g.ball.Pos, g.ball.Vel, g.ball.Radius, g.field,
		physics.SideLeft|physics.SideRight|physics.SideTop)
	if walls != physics.SideNone {
		g.Emit(core.CueBounce)
	}

	g.Trail(g.ball.Pos, g.ball.Vel.Scale(f), core.ColorWhite)

	if physics.Escaped(g.ball.Pos, g.ball.Radius, g.field).Has(physics.SideBottom) {
		g.miss()
		return
	}
	if g.bricksLeft() == 0 {
		g.levelClear()
	}
}

// hitBrick damages brick i. A destroyed brick scores MaxHits times the
// per-hit points, doubled under the multiplier, and may drop a pickup.
func (g *Game) hitBrick(i int) {
	b := &g.bricks[i]
	b.Hits--
	g.hits++

	cx, cy := b.Rect.Center()
	pos := core.V(cx, cy)
	color := rowColors[b.Row%len(rowColors)]

	if b.Alive() {
		g.Burst(pos, color, 4, 4)
		g.Emit(core.CueHit)
		return
	}

	points := b.MaxHits * g.cfg.Gameplay.PointsPerHit
	if g.Active(EffectMultiplier) {
		points *= 2
	}
	g.Score += points
	g.Explode(pos, color, 12)
	g.Emit(core.CueExplosion)
	g.trySpawnPickup(pos)
}

// miss handles the ball falling past the paddle.
func (g *Game) miss() {
	g.Explode(g.ball.Pos, core.ColorRed, 16)
	if !g.LoseLife() {
		return
	}
	g.pickups = g.pickups[:0]
	g.Effects().Clear()
	g.clampPaddle()
	g.stickBall()
}

// levelClear starts the pause between walls.
func (g *Game) levelClear() {
	g.cleared++
	g.pickups = g.pickups[:0]
	g.stickBall()
	g.Emit(core.CueLevelUp)
	g.Phase().BeginTransition(g.cfg.Gameplay.TransitionTime)
}

// FinishTransition builds the next, taller wall.
func (g *Game) FinishTransition() {
	g.Level++
	g.buildLevel()
	g.stickBall()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, minWidth, minHeight)
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)

	for _, p := range g.pickups {
		dst.Text(int(p.Pos.X), int(p.Pos.Y), string(p.Type.Glyph()), core.Glowing(0, p.Type.color()))
	}

	grad := core.NewGradient(core.ColorCyan, core.ColorBlue)
	dst.FillRect(g.paddleRect(), core.Glowing(PaddleChar, core.ColorCyan).WithGradient(grad))
	dst.FillCircle(g.ball.Pos.X, g.ball.Pos.Y, 0, core.Glowing(BallChar, core.ColorWhite))

	m := g.Phase()
	switch {
	case m.Is(core.PhaseTransitioning):
		kit.DrawCenteredBox(dst, "LEVEL CLEAR",
			fmt.Sprintf("Level %d in %.0fs", g.Level+1, math.Ceil(m.Remaining())), core.ColorGreen)
	case m.Is(core.PhaseRunning) && g.stuck:
		hint := "SPACE to launch"
		dst.Text((dst.Width()-len(hint))/2, int(g.paddle.Y)-3, hint, core.Solid(0, core.ColorGray))
	default:
		g.RenderOverlay(dst, "BREAKOUT")
	}
}

// renderHUD draws the score, lives and level on row 0 and running effects
// on row 1.
func (g *Game) renderHUD(dst core.Surface) {
	kit.DrawHUD(dst, 0,
		fmt.Sprintf("Score: %d", g.Score),
		fmt.Sprintf("Lives: %d", g.Lives),
		fmt.Sprintf("Level: %d", g.Level))

	if fx := g.effectsString(); fx != "" {
		dst.Text(1, 1, fx, core.Solid(0, core.ColorYellow))
		return
	}
	dst.Text(0, 1, strings.Repeat(string(BorderHoriz), dst.Width()), core.Solid(0, core.ColorGray))
}

// effectsString lists running effects with whole seconds left.
func (g *Game) effectsString() string {
	var parts []string
	for _, e := range g.Effects().List() {
		left := math.Ceil(g.Effects().Remaining(e.Kind, g.Clock))
		parts = append(parts, fmt.Sprintf("%s(%.0f)", effectLabel(e.Kind), left))
	}
	return strings.Join(parts, " ")
}

// renderBricks draws standing bricks one column short so neighbours stay
// visually separate.
func (g *Game) renderBricks(dst core.Surface) {
	for i := range g.bricks {
		b := &g.bricks[i]
		if !b.Alive() {
			continue
		}
		x0 := math.Round(b.Rect.X)
		x1 := math.Round(b.Rect.Right()) - 1
		dst.FillRect(core.NewRect(x0, b.Rect.Y, math.Max(x1-x0, 1), 1), brickStyle(b))
	}
}

// Register the game with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}
