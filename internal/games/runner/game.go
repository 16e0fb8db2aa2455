// Package runner implements a side-scrolling tunnel runner. The ship climbs
// under thrust and falls under gravity through a procedurally generated
// cave that narrows and speeds up with distance.
package runner

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
	minWidth  = 40
	minHeight = 16

	shipW = 2.0
	shipH = 1.0

	levelDistance = 1000.0 // cells per level
	safeZone      = 8.0    // rocks this close ahead are cleared on respawn
)

// Visual characters for rendering
const (
	ShipSprite = "=>"
	FlameChar  = '~'
	CoinChar   = '●'
	RockChar   = '◆'
	WallChar   = '█'
)

// EffectInvuln is the grace period after a crash.
const EffectInvuln core.EffectKind = iota

// Game implements the tunnel runner logic.
type Game struct {
	kit.Base

	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager

	field    core.Rect
	tooSmall bool

	tunnel *Tunnel
	coins  []core.Vec
	rocks  []core.Vec

	shipX     float64
	shipY     float64 // top of the ship
	shipVY    float64
	thrusting bool

	bombs    int
	distance float64
	awarded  int // distance points already added to Score
	crashes  int
}

// New creates a new tunnel runner instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tunnel Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadRunner()
	g.ResetBase(runtime, g.cfg.Gameplay.Lives)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tooSmall = runtime.ScreenW < minWidth || runtime.ScreenH < minHeight
	g.field = core.NewRect(0, 1, float64(runtime.ScreenW), float64(runtime.ScreenH-1))

	g.coins = g.coins[:0]
	g.rocks = g.rocks[:0]
	g.bombs = g.cfg.Gameplay.Bombs
	g.distance = 0
	g.awarded = 0
	g.crashes = 0
	g.thrusting = false

	// One wall row always stays inside the field.
	t := g.cfg.Tunnel
	g.tunnel = newTunnel(g.field.Y+1, g.field.Bottom()-1, g.gapSize(), t.MaxSlope, t.ChunkLength)
	g.tunnel.Extend(g.field.Right()+1, g.gapSize(), g.Rng)

	g.shipX = core.ClampF(float64(t.ShipX), g.field.X+1, g.field.Right()/2)
	g.placeShip()
}

// speed returns the scroll speed in cells per second.
func (g *Game) speed() float64 {
	return g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.Score, g.distance)
}

// gapSize returns the passage height wanted at the current distance.
func (g *Game) gapSize() float64 {
	gap := g.difficulty.GapSize(g.cfg.Tunnel.MaxGap, g.Score, g.distance)
	return float64(max(gap, g.cfg.Tunnel.MinGap, int(shipH)+2))
}

func (g *Game) shipRect() core.Rect {
	return core.NewRect(g.shipX, g.shipY, shipW, shipH)
}

// placeShip puts the ship at rest in the middle of the passage and clears
// rocks right in front of it.
func (g *Game) placeShip() {
	g.shipVY = 0
	if s, ok := g.tunnel.At(g.shipX + shipW/2); ok {
		g.shipY = math.Floor((s.Top + s.Bottom - shipH) / 2)
	} else {
		_, cy := g.field.Center()
		g.shipY = math.Floor(cy)
	}

	n := 0
	for _, r := range g.rocks {
		if r.X >= g.shipX-1 && r.X < g.shipX+shipW+safeZone {
			continue
		}
		g.rocks[n] = r
		n++
	}
	g.rocks = g.rocks[:n]
}

// Tick advances the game by dt seconds: ship, bomb, scroll and tunnel
// generation, pickups, then collisions.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)
	g.ExpireEffects()

	g.steer(dt, in)
	g.scroll(dt)
	g.collect()
	g.collide()
}

// steer applies gravity and thrust. Thrust is held space, up, a held touch
// or the stick pushed up.
func (g *Game) steer(dt float64, in *input.Manager) {
	p := g.cfg.Physics

	g.thrusting = in.IsPressed(input.KeySpace) || in.TouchActive() || in.AxisY() < -0.5
	if in.ConsumeBufferedInput(input.KeyBomb) {
		g.detonate()
	}
	if gs := in.ConsumeGesture(); gs.Type == input.GestureSwipe && gs.Direction == input.KeyDown {
		g.detonate()
	}

	acc := p.Gravity
	if g.thrusting {
		acc -= p.Thrust
		g.Trail(core.V(g.shipX-0.5, g.shipY+0.5), core.V(-g.speed()/2, 0), core.ColorOrange)
	}
	g.shipVY = core.ClampF(g.shipVY+acc*dt, -p.MaxRiseSpeed, p.MaxFallSpeed)
	g.shipY += g.shipVY * dt

	// The field edge is always wall, so clamping only matters while
	// invulnerable.
	if y := core.ClampF(g.shipY, g.field.Y, g.field.Bottom()-shipH); y != g.shipY {
		g.shipY = y
		g.shipVY = 0
	}
}

// scroll moves the cave left, grows it on the right and awards distance.
func (g *Game) scroll(dt float64) {
	dx := g.speed() * dt
	g.distance += dx

	g.tunnel.Scroll(dx)
	g.coins = scrollItems(g.coins, dx)
	g.rocks = scrollItems(g.rocks, dx)
	for _, s := range g.tunnel.Extend(g.field.Right()+1, g.gapSize(), g.Rng) {
		g.populate(s)
	}

	if pts := int(g.distance/10) * g.cfg.Gameplay.DistancePoints; pts > g.awarded {
		g.Score += pts - g.awarded
		g.awarded = pts
	}
	if lvl := 1 + int(g.distance/levelDistance); lvl > g.Level {
		g.Level = lvl
		g.Emit(core.CueLevelUp)
	}
}

func scrollItems(items []core.Vec, dx float64) []core.Vec {
	n := 0
	for _, it := range items {
		it.X -= dx
		if it.X+1 <= 0 {
			continue
		}
		items[n] = it
		n++
	}
	return items[:n]
}

// populate may drop a coin or a rock into a freshly generated slice. Items
// never sit against the walls.
func (g *Game) populate(s physics.TunnelSlice) {
	room := int(s.Gap()) - 2
	if room <= 0 {
		return
	}
	pos := core.V(s.X, s.Top+1+float64(g.Rng.Intn(room)))
	switch {
	case g.Chance(g.cfg.Gameplay.CoinChance):
		g.coins = append(g.coins, pos)
	case g.Chance(g.cfg.Gameplay.ObstacleChance):
		g.rocks = append(g.rocks, pos)
	}
}

func itemRect(p core.Vec) core.Rect {
	return core.NewRect(p.X, p.Y, 1, 1)
}

// collect picks up coins touching the ship.
func (g *Game) collect() {
	ship := g.shipRect()
	n := 0
	for _, c := range g.coins {
		if physics.Overlaps(ship, itemRect(c)) {
			g.Score += g.cfg.Gameplay.CoinPoints
			g.Burst(c, core.ColorYellow, 8, 6)
			g.Emit(core.CueEat)
			continue
		}
		g.coins[n] = c
		n++
	}
	g.coins = g.coins[:n]
}

// collide checks the ship against walls and rocks.
func (g *Game) collide() {
	if g.Active(EffectInvuln) {
		return
	}
	ship := g.shipRect()
	hit := physics.TunnelCollides(g.tunnel.Slices(), ship)

	n := 0
	for _, r := range g.rocks {
		if physics.Overlaps(ship, itemRect(r)) {
			hit = true
			continue
		}
		g.rocks[n] = r
		n++
	}
	g.rocks = g.rocks[:n]

	if hit {
		g.crash()
	}
}

// crash costs a life. The ship respawns mid-passage with a grace period.
func (g *Game) crash() {
	g.crashes++
	g.Explode(core.V(g.shipX+shipW/2, g.shipY), core.ColorOrange, 24)
	if !g.LoseLife() {
		return
	}
	g.placeShip()
	g.Trigger(EffectInvuln, g.cfg.Gameplay.InvulnSeconds)
}

// detonate spends a bomb on every rock on screen.
func (g *Game) detonate() {
	if g.bombs <= 0 {
		return
	}
	g.bombs--
	g.Emit(core.CueExplosion)

	n := 0
	for _, r := range g.rocks {
		if r.X < g.field.Right() {
			g.Score += g.cfg.Gameplay.ObstaclePoints
			g.Explode(r, core.ColorRed, 12)
			continue
		}
		g.rocks[n] = r
		n++
	}
	g.rocks = g.rocks[:n]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, minWidth, minHeight)
		return
	}

	kit.DrawHUD(dst, 0,
		fmt.Sprintf("Score: %d", g.Score),
		fmt.Sprintf("%dm", int(g.distance)),
		fmt.Sprintf("%s  Bombs: %d", strings.Repeat("♥", g.Lives), g.bombs))

	rock := core.Solid(WallChar, core.ColorBrown).WithGradient(&core.Gradient{
		From: core.ColorBrown, To: core.ColorOrange, Vertical: true,
	})
	for _, s := range g.tunnel.Slices() {
		x := math.Floor(s.X)
		if x < 0 || x >= g.field.Right() {
			continue
		}
		top, bottom := s.Walls(g.field.Bottom())
		top.X, bottom.X = x, x
		top.H -= g.field.Y
		top.Y = g.field.Y
		dst.FillRect(top, rock)
		dst.FillRect(bottom, rock)
	}

	for _, c := range g.coins {
		dst.Text(int(c.X), int(c.Y), string(CoinChar), core.Glowing(0, core.ColorYellow))
	}
	for _, r := range g.rocks {
		dst.Text(int(r.X), int(r.Y), string(RockChar), core.Solid(0, core.ColorRed))
	}

	blink := g.Active(EffectInvuln) && int(g.Effects().Remaining(EffectInvuln, g.Clock)*8)%2 == 1
	if !blink && !g.State().GameOver() {
		x, y := int(g.shipX), int(math.Round(g.shipY))
		dst.Text(x, y, ShipSprite, core.Glowing(0, core.ColorCyan))
		if g.thrusting {
			dst.Text(x-1, y, string(FlameChar), core.Solid(0, core.ColorOrange))
		}
	}

	g.RenderOverlay(dst, "TUNNEL RUNNER")
}

// Register the game with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
