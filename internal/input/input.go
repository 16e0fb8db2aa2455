// Package input turns raw host events into per-frame queries for games.
//
// The host calls KeyDown/KeyUp as events arrive and Update once at the end
// of every frame. Games ask IsPressed, IsJustPressed and IsJustReleased
// during their tick, and may consume timestamped presses from a short
// buffer so inputs that land between simulation steps are not lost.
package input

import (
	"time"
)

// Canonical key names produced by the host.
const (
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
	KeySpace = "space"
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyPause = "p"
	KeyReset = "r"
	KeyQuit  = "q"
	KeyHold  = "c"
	KeyFire  = "f"
	KeyBomb  = "b"
	KeyDrop  = "x"
)

// Options tunes the manager. Zero fields take the defaults in DefaultOptions.
type Options struct {
	BufferWindow     time.Duration // how long a buffered press stays consumable
	TapMaxDistance   float64       // cells
	TapMaxDuration   time.Duration
	SwipeMinDistance float64 // cells
	HoldMinDuration  time.Duration
	Deadzone         float64 // gamepad axis deadzone in [0, 1); NoDeadzone disables it
	// AutoRelease releases held keys that have not repeated for this long.
	// Terminals report presses but not releases, so the host enables it.
	AutoRelease time.Duration
}

// NoDeadzone turns the gamepad deadzone off, since a zero Deadzone selects
// the default.
const NoDeadzone = -1

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		BufferWindow:     150 * time.Millisecond,
		TapMaxDistance:   1,
		TapMaxDuration:   250 * time.Millisecond,
		SwipeMinDistance: 3,
		HoldMinDuration:  500 * time.Millisecond,
		Deadzone:         0.15,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BufferWindow <= 0 {
		o.BufferWindow = d.BufferWindow
	}
	if o.TapMaxDistance <= 0 {
		o.TapMaxDistance = d.TapMaxDistance
	}
	if o.TapMaxDuration <= 0 {
		o.TapMaxDuration = d.TapMaxDuration
	}
	if o.SwipeMinDistance <= 0 {
		o.SwipeMinDistance = d.SwipeMinDistance
	}
	if o.HoldMinDuration <= 0 {
		o.HoldMinDuration = d.HoldMinDuration
	}
	switch {
	case o.Deadzone == 0:
		o.Deadzone = d.Deadzone
	case o.Deadzone < 0:
		o.Deadzone = 0
	}
	return o
}

// BufferedKey is one timestamped press.
type BufferedKey struct {
	Key      string
	At       time.Time
	Consumed bool
}

// Manager tracks keyboard, touch and gamepad state for one session.
type Manager struct {
	opts Options

	current  map[string]bool
	previous map[string]bool
	pressed  map[string]bool // went down since last Update
	released map[string]bool // went up since last Update
	lastSeen map[string]time.Time

	buffer []BufferedKey

	touch   touchTracker
	gesture Gesture

	pad GamepadSource
}

// NewManager creates an input manager.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:     opts.withDefaults(),
		current:  make(map[string]bool),
		previous: make(map[string]bool),
		pressed:  make(map[string]bool),
		released: make(map[string]bool),
		lastSeen: make(map[string]time.Time),
	}
}

// Options returns the effective options.
func (m *Manager) Options() Options {
	return m.opts
}

// KeyDown records a press. Repeats of a held key refresh the hold and are
// buffered, but do not produce a new just-pressed edge.
func (m *Manager) KeyDown(key string, now time.Time) {
	if !m.current[key] {
		m.pressed[key] = true
	}
	m.current[key] = true
	m.lastSeen[key] = now
	m.buffer = append(m.buffer, BufferedKey{Key: key, At: now})
}

// KeyUp records a release.
func (m *Manager) KeyUp(key string) {
	if m.current[key] {
		m.released[key] = true
	}
	delete(m.current, key)
	delete(m.lastSeen, key)
}

// IsPressed reports whether key is held.
func (m *Manager) IsPressed(key string) bool {
	return m.current[key]
}

// IsJustPressed reports whether key went down since the previous frame.
// A press and release inside one frame still counts.
func (m *Manager) IsJustPressed(key string) bool {
	return m.pressed[key] || (m.current[key] && !m.previous[key])
}

// IsJustReleased reports whether key went up since the previous frame.
func (m *Manager) IsJustReleased(key string) bool {
	return m.released[key] || (!m.current[key] && m.previous[key])
}

// AnyJustPressed reports whether any of keys went down this frame.
func (m *Manager) AnyJustPressed(keys ...string) bool {
	for _, k := range keys {
		if m.IsJustPressed(k) {
			return true
		}
	}
	return false
}

// Update rolls current state into previous. Call once per frame after the
// game has ticked.
func (m *Manager) Update() {
	clear(m.previous)
	for k, v := range m.current {
		m.previous[k] = v
	}
	clear(m.pressed)
	clear(m.released)
}

// Prune drops buffered presses older than the buffer window and releases
// keys that stopped repeating when AutoRelease is enabled.
func (m *Manager) Prune(now time.Time) {
	cutoff := now.Add(-m.opts.BufferWindow)
	n := 0
	for _, b := range m.buffer {
		if b.At.Before(cutoff) {
			continue
		}
		m.buffer[n] = b
		n++
	}
	m.buffer = m.buffer[:n]

	if m.opts.AutoRelease > 0 {
		for k, at := range m.lastSeen {
			if now.Sub(at) >= m.opts.AutoRelease {
				m.KeyUp(k)
			}
		}
	}
}

// ConsumeBufferedInput marks the oldest unconsumed press of key as consumed
// and reports whether one was found.
func (m *Manager) ConsumeBufferedInput(key string) bool {
	for i := range m.buffer {
		if m.buffer[i].Key == key && !m.buffer[i].Consumed {
			m.buffer[i].Consumed = true
			return true
		}
	}
	return false
}

// ConsumeAny consumes the oldest unconsumed press among keys and returns
// its key, or "" if none is buffered.
func (m *Manager) ConsumeAny(keys ...string) string {
	for i := range m.buffer {
		if m.buffer[i].Consumed {
			continue
		}
		for _, k := range keys {
			if m.buffer[i].Key == k {
				m.buffer[i].Consumed = true
				return k
			}
		}
	}
	return ""
}

// ClearBuffer drops every buffered press. Held key state is kept.
func (m *Manager) ClearBuffer() {
	m.buffer = m.buffer[:0]
}

// Buffered returns a copy of the current buffer.
func (m *Manager) Buffered() []BufferedKey {
	out := make([]BufferedKey, len(m.buffer))
	copy(out, m.buffer)
	return out
}

// Reset clears all key, buffer and touch state.
func (m *Manager) Reset() {
	clear(m.current)
	clear(m.previous)
	clear(m.pressed)
	clear(m.released)
	clear(m.lastSeen)
	m.buffer = m.buffer[:0]
	m.touch = touchTracker{}
	m.gesture = Gesture{}
}

// AxisX returns horizontal intent in [-1, 1] from arrow keys, falling back
// to the gamepad left stick.
func (m *Manager) AxisX() float64 {
	switch {
	case m.current[KeyLeft] && !m.current[KeyRight]:
		return -1
	case m.current[KeyRight] && !m.current[KeyLeft]:
		return 1
	}
	return m.GetGamepadState().LeftX
}

// AxisY returns vertical intent in [-1, 1] (down is positive).
func (m *Manager) AxisY() float64 {
	switch {
	case m.current[KeyUp] && !m.current[KeyDown]:
		return -1
	case m.current[KeyDown] && !m.current[KeyUp]:
		return 1
	}
	return m.GetGamepadState().LeftY
}
