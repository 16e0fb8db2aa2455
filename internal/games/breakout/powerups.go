package breakout

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

// Timed effects.
const (
	EffectWide       core.EffectKind = iota // paddle widened
	EffectSlow                              // ball slowed
	EffectMultiplier                        // double brick points
)

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupWide PickupType = iota
	PickupSlow
	PickupMultiplier
	PickupExtraLife
	PickupCount // Sentinel for counting types
)

// pickupWeights are relative spawn weights indexed by PickupType.
var pickupWeights = [PickupCount]int{
	PickupWide:       30,
	PickupSlow:       25,
	PickupMultiplier: 25,
	PickupExtraLife:  5, // Rare
}

const (
	pickupFallSpeed = 8.0 // cells per second
	slowFactor      = 0.6
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupWide:
		return 'W'
	case PickupSlow:
		return 'S'
	case PickupMultiplier:
		return '2'
	case PickupExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupWide:
		return "Wide"
	case PickupSlow:
		return "Slow"
	case PickupMultiplier:
		return "x2"
	case PickupExtraLife:
		return "Life"
	default:
		return "?"
	}
}

func (p PickupType) color() core.Color {
	switch p {
	case PickupWide:
		return core.ColorCyan
	case PickupSlow:
		return core.ColorBlue
	case PickupMultiplier:
		return core.ColorOrange
	default:
		return core.ColorPink
	}
}

// effect returns the timed effect a pickup starts, if any.
func (p PickupType) effect() (core.EffectKind, bool) {
	switch p {
	case PickupWide:
		return EffectWide, true
	case PickupSlow:
		return EffectSlow, true
	case PickupMultiplier:
		return EffectMultiplier, true
	}
	return 0, false
}

// Pickup represents a falling power-up item.
type Pickup struct {
	Type PickupType
	Pos  core.Vec // center
}

// Bounds returns the pickup's collision box.
func (p *Pickup) Bounds() core.Rect {
	return core.RectAround(p.Pos.X, p.Pos.Y, 1, 1)
}

// rollPickup picks a pickup type by weight.
func (g *Game) rollPickup() PickupType {
	total := 0
	for _, w := range pickupWeights {
		total += w
	}
	n := g.Rng.Intn(total)
	for t, w := range pickupWeights {
		if n < w {
			return PickupType(t)
		}
		n -= w
	}
	return PickupWide
}

// trySpawnPickup rolls for a pickup at a destroyed brick.
func (g *Game) trySpawnPickup(at core.Vec) {
	pu := g.cfg.PowerUps
	if !pu.Enabled || !g.Chance(pu.SpawnChance) {
		return
	}
	g.pickups = append(g.pickups, Pickup{Type: g.rollPickup(), Pos: at})
}

// updatePickups moves pickups down, applies those caught by the paddle and
// drops those that fell out of the field.
func (g *Game) updatePickups(dt float64) {
	paddle := g.paddleRect()
	n := 0
	for _, p := range g.pickups {
		p.Pos.Y += pickupFallSpeed * dt
		if physics.Overlaps(p.Bounds(), paddle) {
			g.activatePickup(p)
			continue
		}
		if p.Pos.Y > g.field.Bottom() {
			continue
		}
		g.pickups[n] = p
		n++
	}
	g.pickups = g.pickups[:n]
}

// activatePickup applies a collected pickup. Timed effects re-trigger
// rather than stack.
func (g *Game) activatePickup(p Pickup) {
	g.Emit(core.CuePowerUp)
	g.Burst(p.Pos, p.Type.color(), 10, 8)

	if kind, ok := p.Type.effect(); ok {
		g.Trigger(kind, g.cfg.PowerUps.Duration)
		return
	}
	if p.Type == PickupExtraLife {
		g.Lives++
	}
}

// effectLabel names an effect for the HUD.
func effectLabel(k core.EffectKind) string {
	switch k {
	case EffectWide:
		return PickupWide.String()
	case EffectSlow:
		return PickupSlow.String()
	case EffectMultiplier:
		return PickupMultiplier.String()
	default:
		return "?"
	}
}
