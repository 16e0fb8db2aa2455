package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

const volumeStep = 0.1

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

type settingsRow int

const (
	rowSound settingsRow = iota
	rowVolume
	rowDifficulty
	rowCount
)

// SettingsModel edits the stored player settings.
type SettingsModel struct {
	settings  storage.Settings
	cursor    settingsRow
	width     int
	keyMapper *KeyMapper
	done      bool
	quitting  bool
}

// NewSettingsModel starts editing s.
func NewSettingsModel(s storage.Settings, width int) SettingsModel {
	return SettingsModel{settings: s, width: width, keyMapper: NewKeyMapper()}
}

func (m SettingsModel) Init() tea.Cmd { return nil }

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = (m.cursor + rowCount - 1) % rowCount
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % rowCount
		case MenuActionLeft:
			m.settings = adjust(m.settings, m.cursor, -1)
		case MenuActionRight, MenuActionSelect:
			m.settings = adjust(m.settings, m.cursor, 1)
		case MenuActionBack:
			m.done = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// adjust steps the value on row by dir (+1 or -1).
func adjust(s storage.Settings, row settingsRow, dir int) storage.Settings {
	switch row {
	case rowSound:
		s.Sound = !s.Sound
	case rowVolume:
		// Round to the step so repeated presses do not drift.
		v := float64(int((s.Volume+float64(dir)*volumeStep)*10+0.5)) / 10
		s.Volume = min(max(v, 0), 1)
	case rowDifficulty:
		i := 0
		for j, p := range presets {
			if p == s.Preset() {
				i = j
			}
		}
		i = (i + dir + len(presets)) % len(presets)
		s.Difficulty = string(presets[i])
	}
	return s
}

func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}
	sound := "off"
	if m.settings.Sound {
		sound = "on"
	}
	bars := int(m.settings.Volume*10 + 0.5)
	rows := []string{
		fmt.Sprintf("Sound       %s", sound),
		fmt.Sprintf("Volume      %s%s %3.0f%%", strings.Repeat("█", bars), strings.Repeat("░", 10-bars), m.settings.Volume*100),
		fmt.Sprintf("Difficulty  %s", m.settings.Preset()),
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	for i, r := range rows {
		cursor := "  "
		if settingsRow(i) == m.cursor {
			cursor = menuCursor.Render("> ")
			r = menuCursor.Render(r)
		}
		b.WriteString(centerText(cursor+r, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDim.Render("Up/Down: Select  |  Left/Right: Change  |  Esc/B: Save and back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() storage.Settings { return m.settings }

// Done reports whether the user left the screen.
func (m SettingsModel) Done() bool { return m.done }

// IsQuitting returns true if user requested to quit entirely.
func (m SettingsModel) IsQuitting() bool { return m.quitting }
