package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

type styleKey struct {
	fg   core.Color
	bold bool
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderWith(s, lipgloss.NewStyle)
}

// RenderScreenWith renders through r, so SSH sessions use the color
// profile of the remote terminal.
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		return RenderScreen(s)
	}
	return renderWith(s, r.NewStyle)
}

func renderWith(s *core.Screen, newStyle func() lipgloss.Style) string {
	styles := make(map[styleKey]lipgloss.Style)
	styleFor := func(k styleKey) lipgloss.Style {
		st, ok := styles[k]
		if !ok {
			st = newStyle().Foreground(lipgloss.Color(k.fg.Hex())).Bold(k.bold)
			styles[k] = st
		}
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := styleKey{fg: cell.FG, bold: cell.Bold}

			run.Reset()
			blank := true
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (styleKey{fg: cell.FG, bold: cell.Bold}) != start {
					break
				}
				if cell.Rune != ' ' {
					blank = false
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Spaces need no color.
			if blank {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}
