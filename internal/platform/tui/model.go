package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/particles"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// keyAutoRelease is how long a key counts as held after its last repeat.
// Terminals never report releases, and the first auto-repeat arrives
// after roughly a quarter second.
const keyAutoRelease = 300 * time.Millisecond

// GameOptions are the session resources a game model runs against.
type GameOptions struct {
	Store    *storage.Store // nil disables score reporting
	Audio    audio.Player   // nil plays nothing
	Logger   *log.Logger
	Config   core.RuntimeConfig
	Renderer *lipgloss.Renderer // nil uses the local terminal
}

var modelIDs atomic.Uint64

// GameModel is the Bubble Tea model that runs one game's loop.
type GameModel struct {
	id         uint64
	loop       *engine.Loop
	keys       *KeyMapper
	renderer   *lipgloss.Renderer
	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone: leaving the round ends the program
	blurPaused bool // the round was paused by losing focus
}

// NewGameModel creates a model owning a fresh loop, particle engine and
// input manager for game.
func NewGameModel(game registry.Game, opts GameOptions) GameModel {
	cfg := opts.Config
	// Use time-based seed if not specified
	var reseed func() int64
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		reseed = func() int64 { return time.Now().UnixNano() }
	}

	in := input.NewManager(input.Options{AutoRelease: keyAutoRelease})
	fx := particles.New(particles.DefaultCap, cfg.Seed)
	fx.Prewarm()
	eo := engine.Options{
		Game:      game,
		Particles: fx,
		Input:     in,
		Logger:    opts.Logger,
		Config:    cfg,
		Reseed:    reseed,
	}
	// Typed nils must not reach the loop's interfaces.
	if opts.Store != nil {
		eo.Reporter = opts.Store
	}
	if opts.Audio != nil {
		eo.Audio = opts.Audio
	}

	return GameModel{
		id:       modelIDs.Add(1),
		loop:     engine.New(eo),
		keys:     NewKeyMapper(),
		renderer: opts.Renderer,
	}
}

// Init starts the frame and input-prune ticks.
func (m GameModel) Init() tea.Cmd {
	id := m.tickID()
	return tea.Batch(frameCmd(0, id), pruneCmd(id))
}

func (m GameModel) tickID() tickID {
	return tickID{Model: m.id, Gen: m.loop.Generation()}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		ApplyMouse(m.loop.Input(), msg, time.Now())
		return m, nil

	case tea.WindowSizeMsg:
		m.loop.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		if m.loop.Game().Phase().Is(core.PhaseRunning) {
			m.loop.Pause(time.Now())
			m.blurPaused = true
		}
		return m, nil

	case tea.FocusMsg:
		// A round the player paused by hand stays paused.
		if m.blurPaused {
			m.blurPaused = false
			m.loop.Resume(time.Now())
		}
		return m, nil

	case FrameMsg:
		if msg.ID != m.tickID() || m.loop.Stopped() {
			return m, nil
		}
		m.loop.Frame(msg.At)
		return m, frameCmd(m.loop.Config().FrameDuration(), msg.ID)

	case PruneMsg:
		if msg.ID != m.tickID() || m.loop.Stopped() {
			return m, nil
		}
		m.loop.Input().Prune(msg.At)
		return m, pruneCmd(msg.ID)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.loop.Stop()
		return m, tea.Quit
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// B or Esc leaves a finished round; only B leaves a paused one, since
	// Esc resumes.
	phase := m.loop.Game().Phase()
	if (phase.Is(core.PhaseGameOver) && (key == input.KeyEsc || key == input.KeyBomb)) ||
		(phase.Is(core.PhasePaused) && key == input.KeyBomb) {
		m.backToMenu = true
		m.loop.Stop()
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if key != "" {
		m.loop.Input().KeyDown(key, time.Now())
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.loop.Game().ID(), timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.loop.Screen().String()), 0o600)
}

// View renders the last frame.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	return RenderScreenWith(m.renderer, m.loop.Screen())
}

// Loop returns the model's engine loop.
func (m GameModel) Loop() *engine.Loop {
	return m.loop
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for game on the local terminal.
func Run(game registry.Game, opts GameOptions) error {
	model := NewGameModel(game, opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags act as touch
		tea.WithReportFocus(),     // Blur pauses the round
	)

	_, err := p.Run()
	model.loop.Stop()
	return err
}
