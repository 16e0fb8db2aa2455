package core

import "testing"

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *Machine)
		action func(m *Machine) bool
		ok     bool
		want   Phase
	}{
		{"start from ready", func(m *Machine) {}, (*Machine).Start, true, PhaseRunning},
		{"pause from ready", func(m *Machine) {}, (*Machine).Pause, false, PhaseReady},
		{"pause running", func(m *Machine) { m.Start() }, (*Machine).Pause, true, PhasePaused},
		{"resume paused", func(m *Machine) { m.Start(); m.Pause() }, (*Machine).Resume, true, PhaseRunning},
		{"resume running", func(m *Machine) { m.Start() }, (*Machine).Resume, false, PhaseRunning},
		{"end from ready", func(m *Machine) {}, (*Machine).End, false, PhaseReady},
		{"end while paused", func(m *Machine) { m.Start(); m.Pause() }, (*Machine).End, true, PhaseGameOver},
		{"pause after game over", func(m *Machine) { m.Start(); m.End() }, (*Machine).Pause, false, PhaseGameOver},
		{"start after game over", func(m *Machine) { m.Start(); m.End() }, (*Machine).Start, false, PhaseGameOver},
		{"pause while transitioning", func(m *Machine) { m.Start(); m.BeginTransition(1) }, (*Machine).Pause, false, PhaseTransitioning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			tc.setup(m)
			if got := tc.action(m); got != tc.ok {
				t.Errorf("action returned %v, expected %v", got, tc.ok)
			}
			if m.Phase() != tc.want {
				t.Errorf("phase = %s, expected %s", m.Phase(), tc.want)
			}
		})
	}
}

func TestMachineTransitionCountdown(t *testing.T) {
	m := NewMachine()
	m.Start()
	if !m.BeginTransition(2) {
		t.Fatal("BeginTransition should succeed while running")
	}

	for i := 0; i < 3; i++ {
		if m.Advance(0.5) {
			t.Fatalf("transition finished early at step %d", i)
		}
	}
	if !m.Advance(0.5) {
		t.Fatal("transition should finish after 2s")
	}
	if !m.Is(PhaseRunning) {
		t.Errorf("phase after transition = %s, expected running", m.Phase())
	}
	if m.Advance(1) {
		t.Error("Advance should report completion only once")
	}
}

func TestMachineReset(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.End()
	m.Reset()
	if !m.Is(PhaseReady) {
		t.Errorf("Reset should return to ready, got %s", m.Phase())
	}
}
