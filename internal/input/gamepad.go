package input

import "math"

// GamepadState is a polled gamepad snapshot after deadzone filtering.
type GamepadState struct {
	Connected bool
	LeftX     float64
	LeftY     float64
	RightX    float64
	RightY    float64
	Buttons   []bool
}

// GamepadSource polls a physical or virtual pad. ok is false when no pad
// is connected.
type GamepadSource interface {
	Poll() (state GamepadState, ok bool)
}

// SetGamepadSource installs a pad source; nil removes it.
func (m *Manager) SetGamepadSource(src GamepadSource) {
	m.pad = src
}

// GetGamepadState polls the source and applies the deadzone per axis.
// Without a connected pad the neutral state is returned.
func (m *Manager) GetGamepadState() GamepadState {
	if m.pad == nil {
		return GamepadState{}
	}
	st, ok := m.pad.Poll()
	if !ok || !st.Connected {
		return GamepadState{}
	}
	dz := m.opts.Deadzone
	st.LeftX = ApplyDeadzone(st.LeftX, dz)
	st.LeftY = ApplyDeadzone(st.LeftY, dz)
	st.RightX = ApplyDeadzone(st.RightX, dz)
	st.RightY = ApplyDeadzone(st.RightY, dz)
	return st
}

// ApplyDeadzone zeroes axis values whose magnitude is within dz and clamps
// the rest to [-1, 1].
func ApplyDeadzone(v, dz float64) float64 {
	if math.Abs(v) <= dz {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
