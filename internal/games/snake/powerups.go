package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

// Timed power-up effects.
const (
	EffectSpeed      core.EffectKind = iota // faster steps
	EffectSlow                              // slower steps
	EffectShield                            // pass through walls, obstacles and the body
	EffectMultiplier                        // double food points
	EffectReverse                           // steering is mirrored
	EffectPoison                            // food scores nothing
	effectCount
)

// effectGlyph returns the display character for an effect's pickup.
func effectGlyph(k core.EffectKind) rune {
	switch k {
	case EffectSpeed:
		return '»'
	case EffectSlow:
		return '«'
	case EffectShield:
		return '◊'
	case EffectMultiplier:
		return '×'
	case EffectReverse:
		return '↔'
	case EffectPoison:
		return '☠'
	default:
		return '?'
	}
}

func effectName(k core.EffectKind) string {
	switch k {
	case EffectSpeed:
		return "Fast"
	case EffectSlow:
		return "Slow"
	case EffectShield:
		return "Shield"
	case EffectMultiplier:
		return "x2"
	case EffectReverse:
		return "Reverse"
	case EffectPoison:
		return "Poison"
	default:
		return "?"
	}
}

func effectColor(k core.EffectKind) core.Color {
	switch k {
	case EffectSpeed:
		return core.ColorYellow
	case EffectSlow:
		return core.ColorBlue
	case EffectShield:
		return core.ColorCyan
	case EffectMultiplier:
		return core.ColorOrange
	case EffectReverse:
		return core.ColorMagenta
	default:
		return core.ColorPurple
	}
}

// pickup is an uncollected power-up on the board.
type pickup struct {
	kind      core.EffectKind
	pos       physics.Point
	expiresAt float64
}

func (p *pickup) render(dst core.Surface, r core.Rect) {
	dst.FillRect(r, core.Glowing(effectGlyph(p.kind), effectColor(p.kind)))
}

// maybeSpawnPickup rolls for a new pickup after food is eaten.
func (g *Game) maybeSpawnPickup() {
	pu := g.cfg.PowerUps
	if !pu.Enabled || g.pickup != nil || !g.Chance(pu.SpawnChance) {
		return
	}
	p, ok := g.freeCell()
	if !ok {
		return
	}
	g.pickup = &pickup{
		kind:      core.EffectKind(g.Rng.Intn(int(effectCount))),
		pos:       p,
		expiresAt: g.Clock + pu.Lifetime,
	}
}

// collect applies the pickup under the head. Speed and slow cancel each
// other so only one pace effect runs at a time.
func (g *Game) collect() {
	p := g.pickup
	g.pickup = nil

	switch p.kind {
	case EffectSpeed, EffectSlow:
		g.cancelPace()
	}
	g.Trigger(p.kind, g.cfg.PowerUps.Duration)
	g.Emit(core.CuePowerUp)
	g.Burst(g.cellCenter(p.pos), effectColor(p.kind), 12, 10)
}

// cancelPace ends any running speed or slow effect.
func (g *Game) cancelPace() {
	g.Cancel(EffectSpeed)
	g.Cancel(EffectSlow)
}

// expirePowerUps reverts finished effects and removes a stale pickup.
func (g *Game) expirePowerUps() {
	g.ExpireEffects()
	if g.pickup != nil && g.Clock >= g.pickup.expiresAt {
		g.pickup = nil
	}
}

// renderEffects lists active effects with their remaining seconds on the
// HUD's second row.
func (g *Game) renderEffects(dst core.Surface) {
	var parts []string
	for _, e := range g.Effects().List() {
		if left := e.ExpiresAt - g.Clock; left > 0 {
			parts = append(parts, fmt.Sprintf("%s %.0fs", effectName(e.Kind), left))
		}
	}
	if len(parts) > 0 {
		dst.Text(1, 1, strings.Join(parts, "  "), core.Solid(0, core.ColorYellow))
	}
}
