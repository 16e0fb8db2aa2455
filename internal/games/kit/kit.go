// Package kit holds the round bookkeeping and overlay drawing shared by
// every game: phase machine, timed effects, sound cues, particles, RNG and
// the score/lives/level counters.
package kit

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/particles"
)

// Base is embedded by games. It implements the bookkeeping half of
// registry.Game.
type Base struct {
	Cfg   core.RuntimeConfig
	FX    *particles.Engine
	Rng   *rand.Rand
	Clock float64 // seconds of Running time this round

	Score int
	Lives int
	Level int

	// ConfigErr is the problem met loading the game's config on the last
	// Reset; the game then runs on defaults.
	ConfigErr error

	machine core.Machine
	effects core.Effects
	cues    core.CueQueue
}

// Bind attaches the session particle engine.
func (b *Base) Bind(fx *particles.Engine) {
	b.FX = fx
}

// ResetBase returns the round to Ready with fresh counters and RNG.
func (b *Base) ResetBase(cfg core.RuntimeConfig, lives int) {
	b.Cfg = cfg
	b.Rng = rand.New(rand.NewSource(cfg.Seed))
	b.Clock = 0
	b.Score = 0
	b.Lives = lives
	b.Level = 1
	b.machine.Reset()
	b.effects.Clear()
	b.cues.Drain()
}

// ConfigError reports the config problem of the last Reset, if any.
func (b *Base) ConfigError() error {
	return b.ConfigErr
}

// Phase returns the round state machine.
func (b *Base) Phase() *core.Machine {
	return &b.machine
}

// Effects returns the round's timed effects.
func (b *Base) Effects() *core.Effects {
	return &b.effects
}

// DrainCues returns queued sound cues.
func (b *Base) DrainCues() []core.Cue {
	return b.cues.Drain()
}

// Emit queues a sound cue.
func (b *Base) Emit(c core.Cue) {
	b.cues.Emit(c)
}

// Advance adds dt to the round clock.
func (b *Base) Advance(dt float64) {
	b.Clock += dt
}

// Trigger starts or refreshes a timed effect on the round clock.
func (b *Base) Trigger(kind core.EffectKind, duration float64) {
	b.effects.Trigger(kind, b.Clock, duration)
}

// Active reports whether a timed effect is running.
func (b *Base) Active(kind core.EffectKind) bool {
	return b.effects.Active(kind)
}

// Cancel ends a timed effect early.
func (b *Base) Cancel(kind core.EffectKind) {
	b.effects.Cancel(kind)
}

// ExpireEffects drops finished effects and returns their kinds.
func (b *Base) ExpireEffects() []core.EffectKind {
	return b.effects.Expire(b.Clock)
}

// GameOver ends the round.
func (b *Base) GameOver() {
	if b.machine.End() {
		b.cues.Emit(core.CueGameOver)
	}
}

// LoseLife decrements lives, ending the round at zero. It reports whether
// the round continues.
func (b *Base) LoseLife() bool {
	b.Lives--
	b.cues.Emit(core.CueLifeLost)
	if b.Lives <= 0 {
		b.Lives = 0
		b.GameOver()
		return false
	}
	return true
}

// State reports the round counters and phase.
func (b *Base) State() core.GameState {
	return core.GameState{
		Score: b.Score,
		Lives: b.Lives,
		Level: b.Level,
		Phase: b.machine.Phase(),
	}
}

// Explode spawns explosion particles when an engine is bound.
func (b *Base) Explode(pos core.Vec, c core.Color, count int) {
	if b.FX != nil {
		b.FX.CreateExplosion(pos, c, count)
	}
}

// Burst spawns a ring of particles when an engine is bound.
func (b *Base) Burst(pos core.Vec, c core.Color, count int, speed float64) {
	if b.FX != nil {
		b.FX.CreateBurst(pos, c, count, speed)
	}
}

// Trail spawns one trail particle when an engine is bound.
func (b *Base) Trail(pos, vel core.Vec, c core.Color) {
	if b.FX != nil {
		b.FX.CreateTrail(pos, vel, c)
	}
}

// Chance returns true with probability p.
func (b *Base) Chance(p float64) bool {
	return b.Rng.Float64() < p
}

// HashSnapshot returns an FNV-1a hash of a snapshot's printed form, used to
// compare runs for determinism.
func HashSnapshot(v any) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%+v", v)
	return h.Sum64()
}

// RenderOverlay draws the standard phase overlays: the start prompt,
// pause box and game over box.
func (b *Base) RenderOverlay(dst core.Surface, title string) {
	switch b.machine.Phase() {
	case core.PhaseReady:
		DrawCenteredBox(dst, title, "Press SPACE to start", core.ColorCyan)
	case core.PhasePaused:
		DrawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	case core.PhaseGameOver:
		DrawCenteredBox(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Press R to restart", b.Score), core.ColorRed)
	}
}

// DrawCenteredBox draws a centered message box.
func DrawCenteredBox(dst core.Surface, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(float64(boxX), float64(boxY), float64(boxW), float64(boxH))

	dst.FillRect(box, core.Solid(' ', core.ColorBlack))
	dst.StrokeRect(box, core.Solid('░', c))

	dst.Text(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.Glowing(0, c))
	dst.Text(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.Solid(0, core.ColorWhite))
}

// DrawHUD draws left, center and right aligned text on row y.
func DrawHUD(dst core.Surface, y int, left, center, right string) {
	st := core.Solid(0, core.ColorWhite)
	if left != "" {
		dst.Text(1, y, left, st)
	}
	if center != "" {
		dst.Text((dst.Width()-len([]rune(center)))/2, y, center, st)
	}
	if right != "" {
		dst.Text(dst.Width()-len([]rune(right))-1, y, right, st)
	}
}

// DrawTooSmall renders the undersized-window notice.
func DrawTooSmall(dst core.Surface, minW, minH int) {
	st := core.Solid(0, core.ColorYellow)
	msg := "Window too small"
	hint := fmt.Sprintf("Need %dx%d", minW, minH)
	dst.Text((dst.Width()-len(msg))/2, dst.Height()/2-1, msg, st)
	dst.Text((dst.Width()-len(hint))/2, dst.Height()/2+1, hint, st)
}
