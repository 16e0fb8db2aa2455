// Package maze implements a maze-chase game: clear the pellets while four
// ghosts hunt you, and turn the tables with power pellets.
package maze

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	cellW = 2 // screen columns per maze cell

	maxStepsPerTick = 3
	respawnPause    = 1.5
	scatterWaves    = 4 // after this many scatter periods ghosts chase for good
	levelSpeedup    = 0.05
	maxSpeedupLevel = 10
	frightenedBlink = 2.0 // seconds before frightened ends that ghosts flash
)

// Visual characters for rendering
const (
	PlayerChar = '◉'
	GhostChar  = 'ᗣ'
	EyesChar   = '"'
	PelletChar = '·'
	PowerChar  = '●'
	WallChar   = '█'
	DoorChar   = '─'
)

// EffectFrightened marks the power pellet window.
const EffectFrightened core.EffectKind = iota

// Player is the pellet eater.
type Player struct {
	Pos     physics.Point
	Dir     physics.Point
	NextDir physics.Point
	timer   float64
}

// Game implements the maze-chase game logic.
type Game struct {
	kit.Base

	cfg        config.MazeConfig
	difficulty *config.DifficultyManager

	level   *Level
	pellets *physics.Grid

	player Player
	ghosts []Ghost

	scatter     bool
	modeTimer   float64
	scatterDone int // completed scatter periods this life
	ghostsEaten int // since the last power pellet

	offX, offY   int
	minW, minH   int
	tooSmall     bool
	levelCleared bool
}

// New creates a new maze-chase game instance.
func New() *Game {
	lv, err := parseLevel(layout)
	if err != nil {
		panic(err)
	}
	return &Game{level: lv}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "maze"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Maze Chase"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadMaze()
	g.ResetBase(runtime, g.cfg.Gameplay.Lives)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.minW = g.level.W * cellW
	g.minH = g.level.H + 1
	g.tooSmall = runtime.ScreenW < g.minW || runtime.ScreenH < g.minH
	g.offX = (runtime.ScreenW - g.minW) / 2
	g.offY = 1 + (runtime.ScreenH-g.minH)/2

	g.pellets = g.level.freshPellets()
	g.levelCleared = false
	g.resetActors()
}

// resetActors puts the player and ghosts back at their start tiles. Called
// at round start, after a lost life and for each new level.
func (g *Game) resetActors() {
	lv := g.level
	g.player = Player{Pos: lv.PlayerStart, Dir: dirLeft, NextDir: dirLeft}

	n := core.Clamp(g.cfg.Gameplay.Ghosts, 0, len(ghostColors))
	g.ghosts = g.ghosts[:0]
	corners := []physics.Point{
		{X: lv.W - 2, Y: -2},
		{X: 1, Y: -2},
		{X: lv.W - 1, Y: lv.H},
		{X: 0, Y: lv.H},
	}
	for i := range n {
		gh := Ghost{
			Personality: Personality(i),
			Corner:      corners[i],
			Dir:         dirLeft,
			Mode:        GhostActive,
			Pos:         lv.Exit,
		}
		if i > 0 {
			gh.Mode = GhostHouse
			gh.Dir = dirUp
			gh.Pos = lv.House[(i-1)%len(lv.House)]
			gh.ReleaseAt = g.Clock + float64(i)*g.cfg.Timing.GhostRelease
		}
		g.ghosts = append(g.ghosts, gh)
	}

	g.scatter = true
	g.modeTimer = 0
	g.scatterDone = 0
	g.ghostsEaten = 0
	g.Cancel(EffectFrightened)
}

// paced scales a step interval by difficulty and level.
func (g *Game) paced(base float64) float64 {
	lvl := float64(min(g.Level-1, maxSpeedupLevel))
	return g.difficulty.Interval(base, g.Score, g.Clock) / (1 + levelSpeedup*lvl)
}

// Tick advances the game by dt seconds: input, mode timer, player steps,
// then ghost steps. Collisions are checked after every single step.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)
	for _, k := range g.ExpireEffects() {
		if k == EffectFrightened {
			for i := range g.ghosts {
				g.ghosts[i].Frightened = false
			}
		}
	}

	g.readInput(in)
	g.updateMode(dt)

	g.player.timer += dt
	iv := g.paced(g.cfg.Timing.PlayerStep)
	for steps := 0; g.player.timer >= iv && steps < maxStepsPerTick; steps++ {
		g.player.timer -= iv
		g.stepPlayer()
		g.checkCollisions()
		if !g.Phase().Is(core.PhaseRunning) {
			return
		}
	}
	g.player.timer = min(g.player.timer, iv)

	for i := range g.ghosts {
		g.updateGhost(i, dt)
		if !g.Phase().Is(core.PhaseRunning) {
			return
		}
	}
}

// readInput buffers the wanted direction. It is applied at the next step
// where that way is open.
func (g *Game) readInput(in *input.Manager) {
	keys := map[string]physics.Point{
		input.KeyUp:    dirUp,
		input.KeyDown:  dirDown,
		input.KeyLeft:  dirLeft,
		input.KeyRight: dirRight,
	}
	for {
		k := in.ConsumeAny(input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight)
		if k == "" {
			break
		}
		g.player.NextDir = keys[k]
	}
	if gs := in.ConsumeGesture(); gs.Type == input.GestureSwipe {
		if d, ok := keys[gs.Direction]; ok {
			g.player.NextDir = d
		}
	}
}

// updateMode alternates scatter and chase. The timer holds while ghosts are
// frightened.
func (g *Game) updateMode(dt float64) {
	if g.Active(EffectFrightened) || g.scatterDone >= scatterWaves {
		return
	}
	g.modeTimer += dt
	limit := g.cfg.Timing.Chase
	if g.scatter {
		limit = g.cfg.Timing.Scatter
	}
	if g.modeTimer < limit {
		return
	}
	g.modeTimer -= limit
	if g.scatter {
		g.scatterDone++
	}
	g.scatter = !g.scatter && g.scatterDone < scatterWaves
	g.reverseGhosts()
}

// stepPlayer moves the player one tile, turning if the buffered direction
// is open, and eats what it lands on.
func (g *Game) stepPlayer() {
	p := &g.player
	if next := g.level.Wrap(p.Pos.Add(p.NextDir)); p.NextDir != dirNone && g.level.Walkable(next, false) {
		p.Dir = p.NextDir
	}
	next := g.level.Wrap(p.Pos.Add(p.Dir))
	if !g.level.Walkable(next, false) {
		return
	}
	p.Pos = next
	g.eat(p.Pos)
}

// eat consumes the pellet at pos.
func (g *Game) eat(pos physics.Point) {
	gp := g.cfg.Gameplay
	switch g.pellets.At(pos.X, pos.Y) {
	case pelletSmall:
		g.Score += gp.PelletPoints
		g.Emit(core.CueEat)
	case pelletPower:
		g.Score += gp.PowerPoints
		g.frighten()
	default:
		return
	}
	g.pellets.Set(pos.X, pos.Y, pelletNone)

	if g.pellets.Count() == 0 {
		g.clearLevel()
	}
}

// frighten starts the power pellet window. Ghosts already eaten stay eyes.
func (g *Game) frighten() {
	g.Trigger(EffectFrightened, g.cfg.Timing.Frightened)
	g.ghostsEaten = 0
	g.reverseGhosts()
	for i := range g.ghosts {
		if gh := &g.ghosts[i]; gh.Mode != GhostEaten {
			gh.Frightened = true
		}
	}
	g.Emit(core.CuePowerUp)
}

// checkCollisions resolves the player sharing a tile with ghosts.
func (g *Game) checkCollisions() {
	if !g.Phase().Is(core.PhaseRunning) {
		return
	}
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if gh.Pos != g.player.Pos || gh.Mode == GhostEaten {
			continue
		}
		if gh.Frightened {
			g.eatGhost(gh)
			continue
		}
		g.caught()
		return
	}
}

// eatGhost awards GhostPoints doubled for every ghost already eaten on the
// same power pellet and sends the ghost home.
func (g *Game) eatGhost(gh *Ghost) {
	g.Score += g.cfg.Gameplay.GhostPoints << g.ghostsEaten
	g.ghostsEaten++
	gh.Frightened = false
	gh.Mode = GhostEaten
	gh.timer = 0
	g.Burst(g.cellCenter(gh.Pos), core.ColorBlue, 12, 8)
	g.Emit(core.CueScore)
}

// caught costs a life and pauses before everyone resets.
func (g *Game) caught() {
	g.Explode(g.cellCenter(g.player.Pos), core.ColorYellow, 24)
	if !g.LoseLife() {
		return
	}
	g.Phase().BeginTransition(respawnPause)
}

// clearLevel starts the pause before the next maze.
func (g *Game) clearLevel() {
	g.levelCleared = true
	g.Emit(core.CueLevelUp)
	g.Phase().BeginTransition(g.cfg.Gameplay.LevelTransition)
}

// FinishTransition resets the actors, and the pellets too after a cleared
// level.
func (g *Game) FinishTransition() {
	if g.levelCleared {
		g.Level++
		g.pellets = g.level.freshPellets()
		g.levelCleared = false
	}
	g.resetActors()
}

func (g *Game) cellCenter(p physics.Point) core.Vec {
	return core.V(float64(g.offX+p.X*cellW)+1, float64(g.offY+p.Y)+0.5)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, g.minW, g.minH)
		return
	}

	kit.DrawHUD(dst, 0,
		fmt.Sprintf("Score: %d", g.Score),
		fmt.Sprintf("Level: %d", g.Level),
		fmt.Sprintf("Lives: %s", strings.Repeat("♥", g.Lives)))

	lv := g.level
	wall := core.Solid(WallChar, core.ColorBlue)
	if g.Phase().Is(core.PhaseTransitioning) && g.levelCleared && int(g.Clock*6)%2 == 0 {
		wall = core.Solid(WallChar, core.ColorWhite)
	}
	power := int(g.Clock*4)%2 == 0
	for y := range lv.H {
		for x := range lv.W {
			p := physics.Point{X: x, Y: y}
			sx, sy := g.offX+x*cellW, g.offY+y
			switch lv.Tile(p) {
			case TileWall:
				dst.FillRect(core.NewRect(float64(sx), float64(sy), cellW, 1), wall)
				continue
			case TileDoor:
				dst.Text(sx, sy, strings.Repeat(string(DoorChar), cellW), core.Solid(0, core.ColorPink))
				continue
			}
			switch g.pellets.At(x, y) {
			case pelletSmall:
				dst.Text(sx, sy, string(PelletChar), core.Solid(0, core.ColorWhite))
			case pelletPower:
				if power {
					dst.Text(sx, sy, string(PowerChar), core.Glowing(0, core.ColorWhite))
				}
			}
		}
	}

	frightLeft := g.Effects().Remaining(EffectFrightened, g.Clock)
	for _, gh := range g.ghosts {
		sx, sy := g.offX+gh.Pos.X*cellW, g.offY+gh.Pos.Y
		switch {
		case gh.Mode == GhostEaten:
			dst.Text(sx, sy, string(EyesChar), core.Solid(0, core.ColorWhite))
		case gh.Frightened:
			c := core.ColorBlue
			if frightLeft < frightenedBlink && int(frightLeft*6)%2 == 0 {
				c = core.ColorWhite
			}
			dst.Text(sx, sy, string(GhostChar), core.Solid(0, c))
		default:
			dst.Text(sx, sy, string(GhostChar), core.Glowing(0, ghostColors[int(gh.Personality)%len(ghostColors)]))
		}
	}

	if !g.State().GameOver() {
		p := g.player.Pos
		dst.Text(g.offX+p.X*cellW, g.offY+p.Y, string(PlayerChar), core.Glowing(0, core.ColorYellow))
	}

	if g.Phase().Is(core.PhaseTransitioning) && g.levelCleared {
		kit.DrawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEAR", g.Level), "Get ready", core.ColorYellow)
		return
	}
	g.RenderOverlay(dst, "MAZE CHASE")
}

// Register the game with the registry
func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
}
