// Package invaders implements Space Invaders: a marching alien formation,
// eroding shields, a bonus saucer and waves that start lower each time.
package invaders

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

const (
	minWidth  = 50
	minHeight = 20

	playerW      = 3.0
	saucerW      = 5.0
	bulletRadius = 0.25
	maxShots     = 1 // player bullets on screen
)

const (
	PlayerSprite = "▟█▙"
	SaucerSprite = "<=O=>"
	ShotChar     = '│'
	BombChar     = '¦'
)

type targetKind int

const (
	targetAlien targetKind = iota
	targetSaucer
	targetShield
	targetPlayer
)

// target identifies what a bullet sweep struck.
type target struct {
	kind  targetKind
	alien int
	cell  shieldCell
}

// Bullet is a player shot or an alien bomb.
type Bullet struct {
	Pos core.Vec
	Vel core.Vec
}

func (b Bullet) box() core.Rect {
	return core.RectAround(b.Pos.X, b.Pos.Y, 1, 1)
}

// Saucer is the bonus ship crossing the top row.
type Saucer struct {
	Active bool
	Pos    core.Vec // left edge
	Dir    int
	Points int
}

// Rect returns the saucer's collision box.
func (s Saucer) Rect() core.Rect {
	return core.NewRect(s.Pos.X, s.Pos.Y, saucerW, 1)
}

// Game implements the Space Invaders game logic.
type Game struct {
	kit.Base

	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager

	field    core.Rect
	tooSmall bool

	formation  Formation
	marchTimer float64
	shields    []Shield

	playerX  float64 // center
	playerY  float64
	cooldown float64
	shots    []Bullet
	bombs    []Bullet

	saucer      Saucer
	saucerTimer float64
	saucerSide  int

	kills       int
	waveCleared bool // the running transition leads to the next wave
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadInvaders()
	g.ResetBase(runtime, g.cfg.Gameplay.Lives)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tooSmall = runtime.ScreenW < minWidth || runtime.ScreenH < minHeight
	g.field = core.NewRect(0, 1, float64(runtime.ScreenW), float64(runtime.ScreenH-1))
	g.playerY = g.field.Bottom() - 2
	g.kills = 0
	g.saucerSide = 1
	g.startWave()
}

// shieldTop returns the row the bunkers start on.
func (g *Game) shieldTop() float64 {
	return g.playerY - 2 - float64(g.cfg.Shields.Height)
}

// startWave builds a fresh formation and shields for the current level.
// Each wave starts WaveDescent rows lower, never closer than two rows
// above the shields.
func (g *Game) startWave() {
	g.formation = newFormation(g.cfg.Formation, core.Vec{})
	fh := float64(g.formation.Rows-1)*g.formation.SpacingY + 1

	y := g.field.Y + 2 + float64((g.Level-1)*g.cfg.Formation.WaveDescent)
	y = math.Min(y, g.shieldTop()-fh-2)
	g.formation.Origin = core.V(math.Floor((g.field.W-g.formation.Width())/2), y)

	sh := g.cfg.Shields
	g.shields = layoutShields(sh.Count, sh.Width, sh.Height, g.field.W, g.shieldTop())

	g.playerX, _ = g.field.Center()
	g.shots = g.shots[:0]
	g.bombs = g.bombs[:0]
	g.marchTimer = 0
	g.cooldown = 0
	g.saucer = Saucer{}
	g.saucerTimer = g.cfg.Gameplay.SaucerEvery
	g.waveCleared = false
}

// marchInterval returns seconds per formation step. The march speeds up
// as aliens die and with difficulty.
func (g *Game) marchInterval() float64 {
	f := g.cfg.Formation
	frac := float64(g.formation.Alive()) / float64(len(g.formation.Aliens))
	base := core.Lerp(f.MarchMin, f.MarchStart, frac)
	return max(g.difficulty.Interval(base, g.Score, g.Clock), 0.01)
}

// Tick advances the game by dt seconds: player, formation march, alien
// fire, saucer, bullets, then wave completion.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)

	g.movePlayer(dt, in)
	g.march(dt)
	if !g.Phase().Is(core.PhaseRunning) {
		return
	}
	g.alienFire(dt)
	g.updateSaucer(dt)
	g.updateShots(dt)
	g.updateBombs(dt)
	if !g.Phase().Is(core.PhaseRunning) {
		return
	}
	g.bulletClash()

	if g.formation.Alive() == 0 {
		g.waveClear()
	}
}

// movePlayer moves the cannon and fires when asked.
func (g *Game) movePlayer(dt float64, in *input.Manager) {
	g.playerX += in.AxisX() * g.cfg.Player.Speed * dt

	fire := false
	for in.ConsumeAny(input.KeySpace, input.KeyFire, input.KeyUp) != "" {
		fire = true
	}
	if gs := in.ConsumeGesture(); gs.Type == input.GestureTap {
		g.playerX = gs.X
		fire = true
	}
	half := playerW / 2
	g.playerX = core.ClampF(g.playerX, g.field.X+half, g.field.Right()-half)

	g.cooldown -= dt
	if fire && g.cooldown <= 0 && len(g.shots) < maxShots {
		g.shots = append(g.shots, Bullet{
			Pos: core.V(g.playerX, g.playerY-0.5),
			Vel: core.V(0, -g.cfg.Player.BulletSpeed),
		})
		g.cooldown = g.cfg.Player.Cooldown
		g.Emit(core.CueShoot)
	}
}

func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.playerX-playerW/2, g.playerY, playerW, 1)
}

// march steps the formation at most once per tick. Aliens crush shields
// they walk into, and reaching the player's row ends the round.
func (g *Game) march(dt float64) {
	interval := g.marchInterval()
	g.marchTimer += dt
	if g.marchTimer < interval {
		return
	}
	g.marchTimer = math.Min(g.marchTimer-interval, interval)

	f := g.cfg.Formation
	g.formation.Step(g.field.X+1, g.field.Right()-1, float64(f.StepX), float64(f.StepDown))
	g.crushShields()

	if _, _, bottom, ok := g.formation.Extent(); ok && bottom > g.playerY {
		g.Explode(core.V(g.playerX, g.playerY), core.ColorGreen, 20)
		g.GameOver()
	}
}

// alienFire gives one frontline alien a chance to drop a bomb. The chance
// per tick is FireRate*dt, so the formation fires FireRate shots per
// second on average.
func (g *Game) alienFire(dt float64) {
	if len(g.bombs) >= g.cfg.Aliens.MaxBullets || !g.Chance(g.cfg.Aliens.FireRate*dt) {
		return
	}
	front := g.formation.Frontline()
	if len(front) == 0 {
		return
	}
	a := g.formation.Aliens[front[g.Rng.Intn(len(front))]]
	r := g.formation.Rect(a)
	cx, _ := r.Center()
	speed := g.difficulty.Speed(g.cfg.Aliens.BulletSpeed, g.Score, g.Clock)
	g.bombs = append(g.bombs, Bullet{Pos: core.V(cx, r.Bottom()+bulletRadius), Vel: core.V(0, speed)})
}

// updateSaucer launches and moves the bonus saucer.
func (g *Game) updateSaucer(dt float64) {
	gp := g.cfg.Gameplay
	if !g.saucer.Active {
		if gp.SaucerEvery <= 0 || len(gp.SaucerPoints) == 0 {
			return
		}
		g.saucerTimer -= dt
		if g.saucerTimer > 0 {
			return
		}
		x := g.field.X - saucerW
		if g.saucerSide < 0 {
			x = g.field.Right()
		}
		g.saucer = Saucer{
			Active: true,
			Pos:    core.V(x, g.field.Y),
			Dir:    g.saucerSide,
			Points: gp.SaucerPoints[g.Rng.Intn(len(gp.SaucerPoints))],
		}
		g.saucerSide = -g.saucerSide
		return
	}

	g.saucer.Pos.X += float64(g.saucer.Dir) * gp.SaucerSpeed * dt
	if g.saucer.Pos.X > g.field.Right() || g.saucer.Pos.X+saucerW < g.field.X {
		g.saucer.Active = false
		g.saucerTimer = gp.SaucerEvery
	}
}

// sweep moves b and returns the index of the first target struck, or -1.
func sweep(b *Bullet, dt float64, rects []core.Rect) int {
	sw := physics.SweepBall(physics.Ball{Pos: b.Pos, Vel: b.Vel, Radius: bulletRadius}, dt, rects)
	b.Pos = sw.Pos
	return sw.Hit
}

// updateShots moves player bullets against aliens, the saucer and shields.
func (g *Game) updateShots(dt float64) {
	var rects []core.Rect
	var targets []target
	for i, a := range g.formation.Aliens {
		if a.Alive {
			rects = append(rects, g.formation.Rect(a))
			targets = append(targets, target{kind: targetAlien, alien: i})
		}
	}
	if g.saucer.Active {
		rects = append(rects, g.saucer.Rect())
		targets = append(targets, target{kind: targetSaucer})
	}
	rects, targets = g.shieldTargets(rects, targets)

	n := 0
	for _, s := range g.shots {
		if hit := sweep(&s, dt, rects); hit >= 0 {
			g.resolveShot(targets[hit])
			// Later shots this tick must not hit the same target.
			rects[hit] = core.Rect{X: math.Inf(-1)}
			continue
		}
		if s.Pos.Y < g.field.Y {
			continue
		}
		g.shots[n] = s
		n++
	}
	g.shots = g.shots[:n]
}

func (g *Game) resolveShot(t target) {
	switch t.kind {
	case targetAlien:
		a := &g.formation.Aliens[t.alien]
		a.Alive = false
		g.kills++
		g.Score += g.rowPoints(a.Row)
		cx, cy := g.formation.Rect(*a).Center()
		g.Explode(core.V(cx, cy), alienColors[a.Row%len(alienColors)], 10)
		g.Emit(core.CueExplosion)
	case targetSaucer:
		g.Score += g.saucer.Points
		cx, cy := g.saucer.Rect().Center()
		g.Explode(core.V(cx, cy), core.ColorRed, 20)
		g.Emit(core.CueScore)
		g.saucer.Active = false
		g.saucerTimer = g.cfg.Gameplay.SaucerEvery
	case targetShield:
		g.erode(t.cell)
	}
}

// rowPoints returns the value of an alien in row, top row first. Rows past
// the table use its last entry.
func (g *Game) rowPoints(row int) int {
	pts := g.cfg.Aliens.RowPoints
	if len(pts) == 0 {
		return 10
	}
	return pts[min(row, len(pts)-1)]
}

// updateBombs moves alien bombs against shields and the player.
func (g *Game) updateBombs(dt float64) {
	rects, targets := g.shieldTargets(nil, nil)
	rects = append(rects, g.playerRect())
	targets = append(targets, target{kind: targetPlayer})

	n := 0
	hitPlayer := false
	for _, b := range g.bombs {
		if hit := sweep(&b, dt, rects); hit >= 0 {
			t := targets[hit]
			if t.kind == targetPlayer {
				hitPlayer = true
				continue
			}
			g.erode(t.cell)
			rects[hit] = core.Rect{X: math.Inf(-1)}
			continue
		}
		if b.Pos.Y > g.field.Bottom() {
			continue
		}
		g.bombs[n] = b
		n++
	}
	g.bombs = g.bombs[:n]

	if hitPlayer {
		g.playerHit()
	}
}

// bulletClash cancels shots and bombs that meet.
func (g *Game) bulletClash() {
	for i := 0; i < len(g.shots); i++ {
		for j := 0; j < len(g.bombs); j++ {
			if !physics.Overlaps(g.shots[i].box(), g.bombs[j].box()) {
				continue
			}
			g.Burst(g.shots[i].Pos, core.ColorWhite, 4, 4)
			g.shots = append(g.shots[:i], g.shots[i+1:]...)
			g.bombs = append(g.bombs[:j], g.bombs[j+1:]...)
			i--
			break
		}
	}
}

// playerHit costs a life and pauses before the next cannon.
func (g *Game) playerHit() {
	g.Explode(core.V(g.playerX, g.playerY), core.ColorGreen, 24)
	g.shots = g.shots[:0]
	g.bombs = g.bombs[:0]
	if !g.LoseLife() {
		return
	}
	g.Phase().BeginTransition(g.cfg.Gameplay.RespawnPause)
}

// waveClear starts the pause before the next wave.
func (g *Game) waveClear() {
	g.waveCleared = true
	g.shots = g.shots[:0]
	g.bombs = g.bombs[:0]
	g.Emit(core.CueLevelUp)
	g.Phase().BeginTransition(g.cfg.Gameplay.WaveTransition)
}

// FinishTransition starts the next wave or brings in a new cannon.
func (g *Game) FinishTransition() {
	if g.waveCleared {
		g.Level++
		g.startWave()
		return
	}
	g.playerX, _ = g.field.Center()
	g.cooldown = 0
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, minWidth, minHeight)
		return
	}

	kit.DrawHUD(dst, 0,
		fmt.Sprintf("Score: %d", g.Score),
		fmt.Sprintf("Lives: %s", strings.Repeat("♥", g.Lives)),
		fmt.Sprintf("Wave: %d", g.Level))

	for _, a := range g.formation.Aliens {
		if !a.Alive {
			continue
		}
		r := g.formation.Rect(a)
		sprite := alienSprites[a.Row%len(alienSprites)][g.formation.Frame]
		dst.Text(int(r.X), int(r.Y), sprite, core.Solid(0, alienColors[a.Row%len(alienColors)]))
	}

	if g.saucer.Active {
		dst.Text(int(math.Round(g.saucer.Pos.X)), int(g.saucer.Pos.Y), SaucerSprite, core.Glowing(0, core.ColorRed))
	}

	for i := range g.shields {
		s := &g.shields[i]
		for cy := range s.Cells.H {
			for cx := range s.Cells.W {
				hp := s.Cells.At(cx, cy)
				if hp <= 0 {
					continue
				}
				glyph := '█'
				if hp < shieldHP {
					glyph = '▒'
				}
				dst.FillRect(s.cellRect(cx, cy), core.Solid(glyph, core.ColorGreen))
			}
		}
	}

	for _, s := range g.shots {
		dst.Text(int(s.Pos.X), int(s.Pos.Y), string(ShotChar), core.Glowing(0, core.ColorWhite))
	}
	for _, b := range g.bombs {
		dst.Text(int(b.Pos.X), int(b.Pos.Y), string(BombChar), core.Solid(0, core.ColorYellow))
	}

	m := g.Phase()
	respawning := m.Is(core.PhaseTransitioning) && !g.waveCleared
	if !respawning || int(m.Remaining()*6)%2 == 0 {
		r := g.playerRect()
		dst.Text(int(math.Round(r.X)), int(r.Y), PlayerSprite, core.Glowing(0, core.ColorGreen))
	}
	ground := int(g.field.Bottom()) - 1
	dst.Text(0, ground, strings.Repeat("─", dst.Width()), core.Solid(0, core.ColorGreen).WithAlpha(0.6))

	if m.Is(core.PhaseTransitioning) && g.waveCleared {
		kit.DrawCenteredBox(dst, fmt.Sprintf("WAVE %d CLEARED", g.Level), "Get ready", core.ColorGreen)
		return
	}
	g.RenderOverlay(dst, "SPACE INVADERS")
}

// Register the game with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
