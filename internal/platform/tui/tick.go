// Package tui hosts the arcade in a terminal through Bubble Tea.
// It schedules frames, translates keys and mouse events into the input
// manager, renders screens with lipgloss and serves sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pruneInterval is how often the input buffer is pruned, independent of
// the frame rate.
const pruneInterval = 50 * time.Millisecond

// tickID names the loop a tick belongs to: the owning model and the
// loop's generation. Ticks for a stopped or replaced loop are dropped.
type tickID struct {
	Model uint64
	Gen   int
}

// FrameMsg asks a loop to run one frame.
type FrameMsg struct {
	ID tickID
	At time.Time
}

// PruneMsg asks a loop to prune its input buffer.
type PruneMsg struct {
	ID tickID
	At time.Time
}

// frameCmd schedules the next frame.
func frameCmd(d time.Duration, id tickID) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, At: t}
	})
}

func pruneCmd(id tickID) tea.Cmd {
	return tea.Tick(pruneInterval, func(t time.Time) tea.Msg {
		return PruneMsg{ID: id, At: t}
	})
}
