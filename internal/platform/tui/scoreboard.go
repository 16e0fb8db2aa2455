package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

const (
	scoreRowsLimit  = 100
	scoreChrome     = 10 // title, game strip, summary, help
	scoreDateWidth  = 14
	scoreTabPadding = 2
)

var (
	scoreBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	scoreTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	scoreTabActive = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// scoreKeys are the scoreboard bindings; they double as the help view.
type scoreKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the top scores of one game at a time together with
// its lifetime record.
type ScoreboardModel struct {
	store  *storage.Store
	games  []registry.GameInfo
	stats  storage.Stats
	cursor int

	scores []storage.ScoreEntry
	table  table.Model
	help   help.Model
	keys   scoreKeys

	width, height int
	quitting      bool
	back          bool
}

// NewScoreboardModel opens the scoreboard on gameID, or on the first game
// when gameID is empty or unknown. A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int, gameID string) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		stats:  storage.DefaultStats(),
		help:   help.New(),
		keys:   newScoreKeys(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.stats = store.LoadStats()
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.cursor = i
		}
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) newTable() table.Model {
	w := max(m.width-8, 36)
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Behind", Width: 9},
		{Title: "Played", Width: min(scoreDateWidth, w-26)},
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreChrome, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

func (m *ScoreboardModel) current() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// load fetches the selected game's scores and rebuilds the rows. The
// "Behind" column is the gap to the game's best.
func (m *ScoreboardModel) load() {
	m.scores = nil
	if m.store != nil && len(m.games) > 0 {
		if scores, err := m.store.TopScores(m.current(), scoreRowsLimit); err == nil {
			m.scores = scores
		}
	}

	best := 0
	if len(m.scores) > 0 {
		best = m.scores[0].Score
	}
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		gap := "-"
		if d := best - s.Score; d > 0 {
			gap = strconv.Itoa(-d)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			gap,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(dir int) {
	if n := len(m.games); n > 0 {
		m.cursor = (m.cursor + dir + n) % n
		m.load()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update handles keys and resizes.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the game strip, the table and the selected game's record.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.strip(), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = menuDim.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nFinish a round to set one.")
	}
	b.WriteString(centerText(scoreBorder.Render(body), m.width))
	b.WriteString("\n")

	if rec, ok := m.stats.Games[m.current()]; ok && rec.Plays > 0 {
		b.WriteString(centerText(menuDim.Render(recordLine(rec)), m.width))
		b.WriteString("\n")
	}
	b.WriteString(menuDim.Render(m.help.View(m.keys)))
	return b.String()
}

// strip lists the games as tabs, or just the selected one with arrows when
// the tabs do not fit.
func (m ScoreboardModel) strip() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = scoreTabActive.Render(g.Title)
		} else {
			tabs[i] = scoreTab.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-scoreTabPadding {
		line = "< " + scoreTabActive.Render(m.games[m.cursor].Title) + " >"
	}
	return line
}

func recordLine(r storage.GameRecord) string {
	avg := float64(r.TotalScore) / float64(r.Plays)
	line := fmt.Sprintf("Plays %d  |  Best %d  |  Average %.0f", r.Plays, r.HighScore, avg)
	if !r.LastPlayed.IsZero() {
		line += "  |  Last " + r.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.back }

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }
