// Package engine drives one game round per frame: it measures dt, routes
// the start/pause/restart keys into the phase machine, ticks the game,
// ages particles, renders and reports the final score exactly once.
package engine

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/particles"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// HighScoreReporter receives the final score of every finished round.
type HighScoreReporter interface {
	UpdateHighScore(gameID string, score int) error
}

// RoundReporter is an optional HighScoreReporter extension that receives
// the round ID, letting the store ignore duplicate reports.
type RoundReporter interface {
	ReportRound(roundID uuid.UUID, gameID string, score int) error
}

// CuePlayer plays sound cues.
type CuePlayer interface {
	Play(c core.Cue)
}

// Options configures a Loop. Only Game is required.
type Options struct {
	Game      registry.Game
	Particles *particles.Engine
	Input     *input.Manager
	Reporter  HighScoreReporter
	Audio     CuePlayer
	Logger    *log.Logger
	Config    core.RuntimeConfig
	// Reseed, when set, picks the seed of every round after the first.
	Reseed func() int64
}

// Loop owns one game and the session resources it runs against.
type Loop struct {
	game     registry.Game
	fx       *particles.Engine
	in       *input.Manager
	reporter HighScoreReporter
	audio    CuePlayer
	log      *log.Logger
	cfg      core.RuntimeConfig
	reseed   func() int64
	screen   *core.Screen

	last     time.Time
	started  bool
	stopped  bool
	reported bool
	round    uuid.UUID
	gen      int
	frames   int
}

// New creates a loop and resets the game into its first round.
func New(opts Options) *Loop {
	if opts.Game == nil {
		panic("engine: nil game")
	}
	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	fx := opts.Particles
	if fx == nil {
		fx = particles.New(particles.DefaultCap, cfg.Seed)
	}
	in := opts.Input
	if in == nil {
		in = input.NewManager(input.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine"})
	}

	l := &Loop{
		game:     opts.Game,
		fx:       fx,
		in:       in,
		reporter: opts.Reporter,
		audio:    opts.Audio,
		log:      logger,
		cfg:      cfg,
		reseed:   opts.Reseed,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
	}
	l.game.Bind(fx)
	l.newRound()
	return l
}

func (l *Loop) newRound() {
	if l.reseed != nil && l.round != uuid.Nil {
		l.cfg.Seed = l.reseed()
	}
	l.game.Reset(l.cfg)
	if c, ok := l.game.(registry.ConfigReporter); ok {
		if err := c.ConfigError(); err != nil {
			l.log.Warn("game config rejected, using defaults", "game", l.game.ID(), "err", err)
		}
	}
	l.reported = false
	l.round = uuid.New()
	l.log.Debug("round started", "game", l.game.ID(), "round", l.round, "seed", l.cfg.Seed)
}

// Game returns the running game.
func (l *Loop) Game() registry.Game { return l.game }

// Input returns the loop's input manager.
func (l *Loop) Input() *input.Manager { return l.in }

// Particles returns the loop's particle engine.
func (l *Loop) Particles() *particles.Engine { return l.fx }

// Screen returns the buffer the last frame was rendered into.
func (l *Loop) Screen() *core.Screen { return l.screen }

// Config returns the runtime config used for rounds.
func (l *Loop) Config() core.RuntimeConfig { return l.cfg }

// Round returns the current round ID.
func (l *Loop) Round() uuid.UUID { return l.round }

// Generation identifies the current run; it changes on Stop so stale
// frame messages can be discarded.
func (l *Loop) Generation() int { return l.gen }

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool { return l.stopped }

// Frames returns the number of frames processed.
func (l *Loop) Frames() int { return l.frames }

// Frame runs one frame at wall time now.
func (l *Loop) Frame(now time.Time) {
	if l.stopped {
		return
	}
	defer l.recoverFrame()

	dt := l.delta(now)
	dt = l.control(now, dt)

	m := l.game.Phase()
	switch m.Phase() {
	case core.PhaseRunning:
		l.game.Tick(dt, l.in)
	case core.PhaseTransitioning:
		if m.Advance(dt) {
			if t, ok := l.game.(registry.Transitioner); ok {
				t.FinishTransition()
			}
		}
	}

	if !m.Is(core.PhasePaused) {
		l.fx.Update(dt)
	}

	if m.Is(core.PhaseGameOver) {
		l.report()
	}
	l.playCues()
	l.render()
	l.in.Update()
	l.frames++
}

// delta returns the clamped seconds since the previous frame.
func (l *Loop) delta(now time.Time) float64 {
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}
	d := now.Sub(l.last)
	l.last = now
	if d < 0 {
		d = 0
	}
	if d > core.MaxFrameDelta {
		d = core.MaxFrameDelta
	}
	return d.Seconds()
}

// control applies the start, pause and restart keys. It returns the dt
// the rest of the frame should use.
func (l *Loop) control(now time.Time, dt float64) float64 {
	m := l.game.Phase()
	switch m.Phase() {
	case core.PhaseReady:
		if l.in.AnyJustPressed(input.KeySpace, input.KeyEnter) {
			m.Start()
			// The start key must not also act inside the game.
			l.in.Update()
			l.in.ClearBuffer()
			return 0
		}
	case core.PhaseRunning:
		if l.in.AnyJustPressed(input.KeyPause, input.KeyEsc) {
			l.Pause(now)
		}
	case core.PhasePaused:
		if l.in.AnyJustPressed(input.KeyPause, input.KeyEsc) {
			l.Resume(now)
			return 0
		}
	case core.PhaseGameOver:
		if l.in.IsJustPressed(input.KeyReset) {
			l.Restart()
			return 0
		}
	}
	return dt
}

// Pause suspends the round. Particles freeze and no dt accrues.
func (l *Loop) Pause(now time.Time) {
	if l.game.Phase().Pause() {
		l.log.Debug("paused", "game", l.game.ID())
	}
}

// Resume continues a paused round. The frame clock is re-stamped to now so
// the time spent paused is never simulated.
func (l *Loop) Resume(now time.Time) {
	if l.game.Phase().Resume() {
		l.last = now
		l.started = true
		l.in.ClearBuffer()
		l.log.Debug("resumed", "game", l.game.ID())
	}
}

// Restart begins a new round of the same game.
func (l *Loop) Restart() {
	l.report()
	l.fx.Clear()
	l.in.Reset()
	l.newRound()
}

// Resize changes the render surface. A round still in Ready is reset so
// the field matches the new size.
func (l *Loop) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	l.cfg.ScreenW, l.cfg.ScreenH = w, h
	l.screen.Resize(w, h)
	if l.game.Phase().Is(core.PhaseReady) {
		l.game.Reset(l.cfg)
	}
}

// Stop ends the loop: further frames are ignored, timed effects and
// particles are cleared, and an unreported finished round is reported.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	if l.game.Phase().Is(core.PhaseGameOver) {
		l.report()
	}
	l.stopped = true
	l.gen++
	l.game.Effects().Clear()
	l.fx.Clear()
	l.log.Debug("stopped", "game", l.game.ID(), "frames", l.frames)
}

// report sends the round score once.
func (l *Loop) report() {
	if l.reported || !l.game.Phase().Is(core.PhaseGameOver) {
		return
	}
	l.reported = true
	score := l.game.State().Score
	if l.reporter == nil {
		return
	}

	var err error
	if rr, ok := l.reporter.(RoundReporter); ok {
		err = rr.ReportRound(l.round, l.game.ID(), score)
	} else {
		err = l.reporter.UpdateHighScore(l.game.ID(), score)
	}
	if err != nil {
		l.log.Warn("failed to record score", "game", l.game.ID(), "score", score, "err", err)
		return
	}
	l.log.Info("round finished", "game", l.game.ID(), "score", score, "round", l.round)
}

func (l *Loop) playCues() {
	cues := l.game.DrainCues()
	if l.audio == nil {
		return
	}
	for _, c := range cues {
		l.audio.Play(c)
	}
}

func (l *Loop) render() {
	l.screen.Clear()
	l.game.Render(l.screen)
	l.fx.Draw(l.screen)
}

// recoverFrame contains a panic raised inside a frame: it is logged, the
// round is forced to GameOver and the loop keeps running.
func (l *Loop) recoverFrame() {
	r := recover()
	if r == nil {
		return
	}
	l.log.Error("frame panicked", "game", l.game.ID(), "err", fmt.Sprint(r), "stack", string(debug.Stack()))
	m := l.game.Phase()
	if !m.End() {
		// Ready cannot end directly.
		m.Start()
		m.End()
	}
	l.report()
	l.in.Update()
	func() {
		defer func() {
			if r := recover(); r != nil {
				l.log.Error("render panicked", "game", l.game.ID(), "err", fmt.Sprint(r))
			}
		}()
		l.screen.Clear()
		l.game.Render(l.screen)
	}()
}
