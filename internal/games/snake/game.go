package snake

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// delta returns the grid offset of one step in direction d.
func (d Direction) delta() physics.Point {
	switch d {
	case DirUp:
		return physics.Point{X: 0, Y: -1}
	case DirDown:
		return physics.Point{X: 0, Y: 1}
	case DirLeft:
		return physics.Point{X: -1, Y: 0}
	default:
		return physics.Point{X: 1, Y: 0}
	}
}

// horizontal reports whether d moves along the X axis.
func (d Direction) horizontal() bool {
	return d == DirLeft || d == DirRight
}

// opposite returns the reverse heading.
func (d Direction) opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// directionFor maps a key or swipe name to a direction.
func directionFor(key string) (Direction, bool) {
	switch key {
	case input.KeyUp:
		return DirUp, true
	case input.KeyDown:
		return DirDown, true
	case input.KeyLeft:
		return DirLeft, true
	case input.KeyRight:
		return DirRight, true
	}
	return DirRight, false
}

const (
	hudHeight  = 2
	minWidth   = 24
	minHeight  = 12
	obstacle   = 1
	respawnFor = 1.0 // seconds of Transitioning after losing a life
)

// Game implements Snake.
type Game struct {
	kit.Base

	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager

	// Playfield in grid cells, drawn inside a border at (offX, offY).
	width, height int
	offX, offY    int
	obstacles     *physics.Grid
	tooSmall      bool

	snake     []physics.Point // head at index 0
	direction Direction
	nextDir   Direction // committed at the next grid step
	growing   int       // segments still to add

	food      physics.Point
	pickup    *pickup
	foodEaten int
	stepTimer float64
	steps     uint64
}

// New creates a Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadSnake()
	g.ResetBase(cfg, g.cfg.Gameplay.Lives)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.width = cfg.ScreenW - 2
	g.height = cfg.ScreenH - hudHeight - 2
	g.offX = 1
	g.offY = hudHeight + 1
	g.tooSmall = cfg.ScreenW < minWidth || cfg.ScreenH < minHeight
	if g.tooSmall {
		g.width, g.height = 1, 1
	}

	g.obstacles = physics.NewGrid(g.width, g.height)
	g.pickup = nil
	g.foodEaten = 0
	g.stepTimer = 0
	g.steps = 0

	if g.tooSmall {
		return
	}
	g.spawnSnake()
	g.spawnFood()
}

// spawnSnake places a fresh snake heading right at the middle of the
// left half of the board.
func (g *Game) spawnSnake() {
	n := max(g.cfg.Gameplay.InitialLength, 2)
	start := physics.Point{X: g.width / 4, Y: g.height / 2}
	for g.blockedRun(start, n) && start.Y < g.height-1 {
		start.Y++
	}

	g.snake = g.snake[:0]
	for i := range n {
		g.snake = append(g.snake, physics.Point{X: start.X + n - 1 - i, Y: start.Y})
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = 0
	g.stepTimer = 0
}

// blockedRun reports whether a horizontal run of n cells from p hits an
// obstacle.
func (g *Game) blockedRun(p physics.Point, n int) bool {
	for i := range n {
		if !g.obstacles.Empty(p.X+i, p.Y) {
			return true
		}
	}
	return false
}

// freeCell returns a random empty cell, or false if the board is full.
func (g *Game) freeCell() (physics.Point, bool) {
	var cells []physics.Point
	for y := range g.height {
		for x := range g.width {
			p := physics.Point{X: x, Y: y}
			if g.obstacles.Empty(x, y) && !g.isSnakeAt(p) && p != g.food &&
				(g.pickup == nil || g.pickup.pos != p) {
				cells = append(cells, p)
			}
		}
	}
	if len(cells) == 0 {
		return physics.Point{}, false
	}
	return cells[g.Rng.Intn(len(cells))], true
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	g.food = physics.Point{X: -1, Y: -1}
	if p, ok := g.freeCell(); ok {
		g.food = p
	}
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p physics.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Tick advances the game by dt seconds.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)

	g.processInput(in)
	g.expirePowerUps()

	g.stepTimer += dt
	interval := g.stepInterval()
	for g.stepTimer >= interval && g.Phase().Is(core.PhaseRunning) {
		g.stepTimer -= interval
		g.step()
	}
}

// processInput drains buffered direction presses and swipes into nextDir.
// Only turns onto the other axis are accepted, so the last orthogonal
// press before a step wins and a reversal is ignored.
func (g *Game) processInput(in *input.Manager) {
	for {
		key := in.ConsumeAny(input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight)
		if key == "" {
			break
		}
		g.turn(key)
	}
	if gesture := in.ConsumeGesture(); gesture.Type == input.GestureSwipe {
		g.turn(gesture.Direction)
	}
}

// turn buffers a direction change if it is orthogonal to the heading.
func (g *Game) turn(key string) {
	d, ok := directionFor(key)
	if !ok {
		return
	}
	if g.Active(EffectReverse) {
		d = d.opposite()
	}
	if d.horizontal() != g.direction.horizontal() {
		g.nextDir = d
	}
}

// stepInterval returns seconds per grid step after food speed-up,
// difficulty and active speed effects.
func (g *Game) stepInterval() float64 {
	mv := g.cfg.Movement
	base := mv.StepInterval - float64(g.foodEaten)*mv.SpeedUpPerFood
	base = g.difficulty.Interval(base, g.Score, g.Clock)
	if g.Active(EffectSpeed) {
		base *= 0.6
	}
	if g.Active(EffectSlow) {
		base *= 1.6
	}
	return max(base, mv.MinInterval, 0.01)
}

// step moves the snake one cell. Collisions are resolved boundary first,
// then obstacles and the body, then food and pickups.
func (g *Game) step() {
	g.steps++
	g.direction = g.nextDir
	head := g.snake[0].Add(g.direction.delta())
	shielded := g.Active(EffectShield)

	if !g.obstacles.InBounds(head.X, head.Y) {
		if !g.cfg.Movement.Wrap && !shielded {
			g.die()
			return
		}
		head.X = (head.X + g.width) % g.width
		head.Y = (head.Y + g.height) % g.height
	}

	if !shielded {
		if !g.obstacles.Empty(head.X, head.Y) || g.hitsBody(head) {
			g.die()
			return
		}
	}

	g.snake = append(g.snake, physics.Point{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	if g.growing > 0 {
		g.growing--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if head == g.food {
		g.eat()
	}
	if g.pickup != nil && head == g.pickup.pos {
		g.collect()
	}
}

// hitsBody reports whether moving the head to p collides with the body.
// The tail cell is free when the snake is not growing because it moves
// away this step.
func (g *Game) hitsBody(p physics.Point) bool {
	n := len(g.snake)
	if g.growing == 0 {
		n--
	}
	for i := range n {
		if g.snake[i] == p {
			return true
		}
	}
	return false
}

// eat scores the food, grows the snake and may level up.
func (g *Game) eat() {
	points := g.cfg.Gameplay.FoodPoints * g.multiplier()
	g.Score += points
	g.foodEaten++
	g.growing++
	g.Emit(core.CueEat)
	g.Burst(g.cellCenter(g.food), core.ColorRed, 10, 8)

	if per := g.cfg.Gameplay.FoodPerLevel; per > 0 && g.foodEaten%per == 0 {
		g.levelUp()
	}

	g.spawnFood()
	g.maybeSpawnPickup()
}

// multiplier returns the score multiplier from active effects.
func (g *Game) multiplier() int {
	switch {
	case g.Active(EffectPoison):
		return 0
	case g.Active(EffectMultiplier):
		return 2
	}
	return 1
}

// levelUp raises the level and scatters more obstacles.
func (g *Game) levelUp() {
	g.Level++
	g.Emit(core.CueLevelUp)
	for range g.cfg.Gameplay.ObstaclesPerLevel {
		p, ok := g.freeCell()
		if !ok {
			return
		}
		// Keep the cells right in front of the head clear.
		ahead := g.snake[0].Add(g.direction.delta())
		if p == ahead || p == ahead.Add(g.direction.delta()) {
			continue
		}
		g.obstacles.Set(p.X, p.Y, obstacle)
	}
}

// die costs a life and respawns the snake after a short pause.
func (g *Game) die() {
	for _, seg := range g.snake {
		g.Explode(g.cellCenter(seg), core.ColorGreen, 3)
	}
	g.Emit(core.CueExplosion)
	if !g.LoseLife() {
		return
	}
	g.Effects().Clear()
	g.pickup = nil
	g.spawnSnake()
	g.Phase().BeginTransition(respawnFor)
}

// cellCenter returns the screen position of a grid cell's center.
func (g *Game) cellCenter(p physics.Point) core.Vec {
	return core.V(float64(g.offX+p.X)+0.5, float64(g.offY+p.Y)+0.5)
}

// Render draws the game.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, minWidth, minHeight)
		return
	}

	kit.DrawHUD(dst, 0,
		fmt.Sprintf("Score: %d", g.Score),
		fmt.Sprintf("Level %d", g.Level),
		fmt.Sprintf("Lives: %d", g.Lives))
	g.renderEffects(dst)

	border := core.NewRect(float64(g.offX-1), float64(g.offY-1), float64(g.width+2), float64(g.height+2))
	dst.StrokeRect(border, core.Solid('░', core.ColorGray))

	for y := range g.height {
		for x := range g.width {
			if !g.obstacles.Empty(x, y) {
				dst.FillRect(g.cellRect(physics.Point{X: x, Y: y}), core.Solid('▓', core.ColorBrown))
			}
		}
	}

	if g.food.X >= 0 {
		dst.FillRect(g.cellRect(g.food), core.Glowing('●', core.ColorRed))
	}
	if g.pickup != nil {
		g.pickup.render(dst, g.cellRect(g.pickup.pos))
	}

	body := core.ColorGreen
	if g.Active(EffectShield) {
		body = core.ColorCyan
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			dst.FillRect(g.cellRect(g.snake[i]), core.Glowing('█', body))
			continue
		}
		fade := 1 - 0.5*float64(i)/float64(len(g.snake))
		dst.FillRect(g.cellRect(g.snake[i]), core.Solid('▓', body.Scale(fade)))
	}

	g.RenderOverlay(dst, "SNAKE")
}

// cellRect returns the one-cell screen rect of grid point p.
func (g *Game) cellRect(p physics.Point) core.Rect {
	return core.NewRect(float64(g.offX+p.X), float64(g.offY+p.Y), 1, 1)
}
