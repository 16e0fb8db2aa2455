package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/input"
)

// KeyMapper translates Bubble Tea key messages to canonical input keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]string
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]string{
		"up":    input.KeyUp,
		"w":     input.KeyUp,
		"k":     input.KeyUp,
		"down":  input.KeyDown,
		"s":     input.KeyDown,
		"j":     input.KeyDown,
		"left":  input.KeyLeft,
		"a":     input.KeyLeft,
		"h":     input.KeyLeft,
		"right": input.KeyRight,
		"d":     input.KeyRight,
		"l":     input.KeyRight,
		" ":     input.KeySpace,
		"space": input.KeySpace,
		"enter": input.KeyEnter,
		"esc":   input.KeyEsc,
		"p":     input.KeyPause,
		"r":     input.KeyReset,
		"c":     input.KeyHold,
		"f":     input.KeyFire,
		"b":     input.KeyBomb,
		"x":     input.KeyDrop,
		"z":     input.KeyDrop,
	}}
}

// MapKey returns the canonical key for msg, or "" if it is unbound.
// isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (key string, isQuit bool) {
	s := msg.String()
	switch s {
	case "ctrl+c", "q":
		return input.KeyQuit, true
	}
	return km.bindings[s], false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionSettings
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "o":
		return MenuActionSettings
	}
	return MenuActionNone
}

// ApplyMouse feeds a left-button mouse event to the manager as a single
// touch in cell coordinates. It returns the gesture when the touch ends.
func ApplyMouse(in *input.Manager, msg tea.MouseMsg, now time.Time) (input.Gesture, bool) {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			in.TouchStart(x, y, now)
		}
	case tea.MouseActionMotion:
		in.TouchMove(x, y)
	case tea.MouseActionRelease:
		if in.TouchActive() {
			return in.TouchEnd(x, y, now), true
		}
	}
	return input.Gesture{}, false
}
