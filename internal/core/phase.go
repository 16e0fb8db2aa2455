package core

// Phase is the lifecycle state of one game round.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseTransitioning
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Machine enforces the legal phase transitions:
//
//	Ready -> Running <-> Paused
//	Running -> Transitioning -> Running
//	Running | Paused | Transitioning -> GameOver
//
// Illegal requests are ignored and report false.
type Machine struct {
	phase     Phase
	remaining float64 // seconds left in Transitioning
}

// NewMachine returns a machine in the Ready phase.
func NewMachine() *Machine {
	return &Machine{phase: PhaseReady}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Is reports whether the machine is in phase p.
func (m *Machine) Is(p Phase) bool {
	return m.phase == p
}

// Start moves Ready to Running.
func (m *Machine) Start() bool {
	if m.phase != PhaseReady {
		return false
	}
	m.phase = PhaseRunning
	return true
}

// Pause moves Running to Paused.
func (m *Machine) Pause() bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.phase = PhasePaused
	return true
}

// Resume moves Paused back to Running.
func (m *Machine) Resume() bool {
	if m.phase != PhasePaused {
		return false
	}
	m.phase = PhaseRunning
	return true
}

// BeginTransition enters Transitioning for d seconds.
func (m *Machine) BeginTransition(d float64) bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.phase = PhaseTransitioning
	m.remaining = d
	return true
}

// Advance counts down a transition by dt seconds. It returns true exactly
// once, on the frame the countdown finishes and the machine is back in
// Running.
func (m *Machine) Advance(dt float64) bool {
	if m.phase != PhaseTransitioning {
		return false
	}
	m.remaining -= dt
	if m.remaining > 0 {
		return false
	}
	m.remaining = 0
	m.phase = PhaseRunning
	return true
}

// Remaining returns seconds left in the current transition.
func (m *Machine) Remaining() float64 {
	return m.remaining
}

// End moves to GameOver from any active phase.
func (m *Machine) End() bool {
	switch m.phase {
	case PhaseRunning, PhasePaused, PhaseTransitioning:
		m.phase = PhaseGameOver
		m.remaining = 0
		return true
	}
	return false
}

// Reset returns the machine to Ready.
func (m *Machine) Reset() {
	m.phase = PhaseReady
	m.remaining = 0
}
