package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// SessionOptions configure one arcade session.
type SessionOptions struct {
	Store    *storage.Store
	Audio    audio.Player
	Logger   *log.Logger
	Config   core.RuntimeConfig
	Renderer *lipgloss.Renderer
	// Remote sessions share the server's store and preset, so the settings
	// screen is hidden.
	Remote bool
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
	screenSettings
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// plus the scoreboard and settings screens.
type SessionModel struct {
	opts     SessionOptions
	screen   screen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	settings SettingsModel
	quitting bool
}

// NewSessionModel creates a session that opens on the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := SessionModel{opts: opts}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Store, m.opts.Config.ScreenW, m.opts.Config.ScreenH, !m.opts.Remote)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Config.ScreenW, m.opts.Config.ScreenH, m.currentGameID())
		return m, m.scores.Init()

	case m.menu.WantsSettings():
		s := storage.DefaultSettings()
		if m.opts.Store != nil {
			s = m.opts.Store.LoadSettings()
		}
		m.screen = screenSettings
		m.settings = NewSettingsModel(s, m.opts.Config.ScreenW)
		return m, nil

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}

	return m, cmd
}

func (m SessionModel) currentGameID() string {
	if len(m.menu.items) == 0 {
		return ""
	}
	return m.menu.items[m.menu.cursor].GameID
}

func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		// The menu only lists registered games.
		m.opts.Logger.Error("cannot create game", "game", gameID, "err", err)
		m.menu = m.newMenu()
		return m, nil
	}

	gm := NewGameModel(game, GameOptions{
		Store:    m.opts.Store,
		Audio:    m.opts.Audio,
		Logger:   m.opts.Logger,
		Config:   m.opts.Config,
		Renderer: m.opts.Renderer,
	})
	m.game = &gm
	m.screen = screenGame
	m.opts.Logger.Info("game started", "game", gameID)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if sm, ok := next.(SettingsModel); ok {
		m.settings = sm
	}

	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.Done() {
		m.applySettings(m.settings.Settings())
		return m.toMenu()
	}
	return m, cmd
}

// applySettings stores s and makes it take effect for the next game.
func (m SessionModel) applySettings(s storage.Settings) {
	if m.opts.Store != nil {
		if err := m.opts.Store.SaveSettings(s); err != nil {
			m.opts.Logger.Warn("failed to save settings", "err", err)
		}
	}
	ApplySettings(s, m.opts.Audio)
}

// ApplySettings sets the difficulty preset and audio state from s.
func ApplySettings(s storage.Settings, player audio.Player) {
	config.SetDifficultyPreset(s.Preset())
	if player != nil {
		player.SetEnabled(s.Sound)
		player.SetVolume(s.Volume)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.game.Loop().Stop()
		m.game = nil
	}
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// Stop ends any running game loop.
func (m SessionModel) Stop() {
	if m.game != nil {
		m.game.Loop().Stop()
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	}
	return m.menu.View()
}

// RunSession runs a menu-driven session on the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Stop()
	}
	return err
}
