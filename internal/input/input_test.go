package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestKeyEdges(t *testing.T) {
	m := NewManager(Options{})

	m.KeyDown(KeyLeft, at(0))
	if !m.IsPressed(KeyLeft) || !m.IsJustPressed(KeyLeft) {
		t.Fatal("first frame should be pressed and just-pressed")
	}
	m.Update()

	if !m.IsPressed(KeyLeft) || m.IsJustPressed(KeyLeft) {
		t.Error("second frame should be held but not just-pressed")
	}

	m.KeyDown(KeyLeft, at(30)) // repeat
	if m.IsJustPressed(KeyLeft) {
		t.Error("key repeat should not create a new edge")
	}

	m.KeyUp(KeyLeft)
	if !m.IsJustReleased(KeyLeft) || m.IsPressed(KeyLeft) {
		t.Error("release should be visible this frame")
	}
	m.Update()
	if m.IsJustReleased(KeyLeft) {
		t.Error("release edge should last one frame")
	}
}

func TestPressAndReleaseWithinFrame(t *testing.T) {
	m := NewManager(Options{})
	m.KeyDown(KeySpace, at(0))
	m.KeyUp(KeySpace)

	if !m.IsJustPressed(KeySpace) {
		t.Error("a tap inside one frame should still be just-pressed")
	}
	if m.IsPressed(KeySpace) {
		t.Error("key should not be held after release")
	}
}

func TestBufferWindow(t *testing.T) {
	m := NewManager(Options{BufferWindow: 150 * time.Millisecond})

	m.KeyDown(KeyUp, at(0))
	m.Prune(at(100))
	if !m.ConsumeBufferedInput(KeyUp) {
		t.Error("press within window should be consumable")
	}
	if m.ConsumeBufferedInput(KeyUp) {
		t.Error("a press can be consumed only once")
	}

	m.KeyDown(KeyDown, at(200))
	m.Prune(at(351))
	if m.ConsumeBufferedInput(KeyDown) {
		t.Error("press older than the window should be pruned")
	}
}

func TestConsumeOldestFirst(t *testing.T) {
	m := NewManager(Options{})
	m.KeyDown(KeyLeft, at(0))
	m.KeyDown(KeyUp, at(10))

	if got := m.ConsumeAny(KeyUp, KeyLeft); got != KeyLeft {
		t.Errorf("ConsumeAny() = %q, expected oldest %q", got, KeyLeft)
	}
	if got := m.ConsumeAny(KeyUp, KeyLeft); got != KeyUp {
		t.Errorf("ConsumeAny() = %q, expected %q", got, KeyUp)
	}
	if got := m.ConsumeAny(KeyUp, KeyLeft); got != "" {
		t.Errorf("ConsumeAny() = %q, expected empty", got)
	}
}

func TestClearBufferKeepsHeldKeys(t *testing.T) {
	m := NewManager(Options{})
	m.KeyDown(KeySpace, at(0))
	m.KeyDown(KeyLeft, at(5))

	m.ClearBuffer()
	if got := m.ConsumeAny(KeySpace, KeyLeft); got != "" {
		t.Errorf("ConsumeAny() = %q after ClearBuffer, expected empty", got)
	}
	if !m.IsPressed(KeyLeft) {
		t.Error("ClearBuffer should not release held keys")
	}

	m.KeyDown(KeyLeft, at(30))
	if !m.ConsumeBufferedInput(KeyLeft) {
		t.Error("presses after ClearBuffer should buffer again")
	}
}

func TestAutoRelease(t *testing.T) {
	m := NewManager(Options{AutoRelease: 100 * time.Millisecond})
	m.KeyDown(KeyRight, at(0))
	m.Prune(at(50))
	if !m.IsPressed(KeyRight) {
		t.Fatal("key should still be held")
	}
	m.KeyDown(KeyRight, at(80))
	m.Prune(at(150))
	if !m.IsPressed(KeyRight) {
		t.Fatal("repeat should refresh the hold")
	}
	m.Prune(at(181))
	if m.IsPressed(KeyRight) {
		t.Error("key should auto-release after the timeout")
	}
}

func TestGestureClassification(t *testing.T) {
	o := DefaultOptions()
	tests := []struct {
		name   string
		dx, dy float64
		dur    time.Duration
		want   GestureType
		dir    string
	}{
		{"tap", 0.5, 0, 100 * time.Millisecond, GestureTap, ""},
		{"swipe left", -5, 1, 100 * time.Millisecond, GestureSwipe, KeyLeft},
		{"swipe down", 1, 4, 100 * time.Millisecond, GestureSwipe, KeyDown},
		{"slow swipe still swipe", 0, -6, time.Second, GestureSwipe, KeyUp},
		{"hold", 0, 0, 600 * time.Millisecond, GestureHold, ""},
		{"drift short is tap", 2, 0, 100 * time.Millisecond, GestureTap, ""},
		{"drift long is hold", 2, 0, 300 * time.Millisecond, GestureHold, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := classify(o, tc.dx, tc.dy, tc.dur)
			if g.Type != tc.want {
				t.Errorf("type = %s, expected %s", g.Type, tc.want)
			}
			if g.Direction != tc.dir {
				t.Errorf("direction = %q, expected %q", g.Direction, tc.dir)
			}
		})
	}
}

func TestTouchLifecycle(t *testing.T) {
	m := NewManager(Options{})
	if g := m.TouchEnd(1, 1, at(0)); g.Type != GestureNone {
		t.Error("TouchEnd without TouchStart should be GestureNone")
	}

	m.TouchStart(10, 10, at(0))
	m.TouchMove(12, 10)
	if !m.TouchActive() {
		t.Fatal("touch should be active")
	}
	g := m.TouchEnd(20, 10, at(120))
	if g.Type != GestureSwipe || g.Direction != KeyRight {
		t.Errorf("gesture = %+v, expected swipe right", g)
	}
	if m.LastGesture().Type != GestureSwipe {
		t.Error("LastGesture should report the swipe")
	}
	if m.ConsumeGesture().Type != GestureSwipe || m.LastGesture().Type != GestureNone {
		t.Error("ConsumeGesture should clear the gesture")
	}
}

type fakePad struct {
	state GamepadState
	ok    bool
}

func (f fakePad) Poll() (GamepadState, bool) { return f.state, f.ok }

func TestGamepadDeadzone(t *testing.T) {
	m := NewManager(Options{Deadzone: 0.2})

	if st := m.GetGamepadState(); st.Connected || st.LeftX != 0 {
		t.Errorf("nil source should be neutral, got %+v", st)
	}

	m.SetGamepadSource(fakePad{ok: false})
	if st := m.GetGamepadState(); st.Connected {
		t.Error("disconnected pad should be neutral")
	}

	m.SetGamepadSource(fakePad{ok: true, state: GamepadState{
		Connected: true, LeftX: 0.1, LeftY: -0.5, RightX: 1.4, RightY: -0.19,
	}})
	st := m.GetGamepadState()
	if st.LeftX != 0 || st.LeftY != -0.5 || st.RightX != 1 || st.RightY != 0 {
		t.Errorf("deadzone not applied: %+v", st)
	}
	if m.AxisY() != -0.5 {
		t.Errorf("AxisY() should fall back to the stick, got %v", m.AxisY())
	}

	m.KeyDown(KeyDown, at(0))
	if m.AxisY() != 1 {
		t.Errorf("keys should override the stick, got %v", m.AxisY())
	}
}

func TestDeadzoneBoundary(t *testing.T) {
	tests := []struct {
		v, dz, want float64
	}{
		{0.2, 0.2, 0},
		{-0.2, 0.2, 0},
		{0.21, 0.2, 0.21},
		{0.05, 0, 0.05},
		{-3, 0.2, -1},
	}
	for _, tt := range tests {
		if got := ApplyDeadzone(tt.v, tt.dz); got != tt.want {
			t.Errorf("ApplyDeadzone(%v, %v) = %v, expected %v", tt.v, tt.dz, got, tt.want)
		}
	}

	if dz := NewManager(Options{}).Options().Deadzone; dz != DefaultOptions().Deadzone {
		t.Errorf("zero Deadzone should take the default, got %v", dz)
	}
	m := NewManager(Options{Deadzone: NoDeadzone})
	if dz := m.Options().Deadzone; dz != 0 {
		t.Errorf("NoDeadzone should disable the deadzone, got %v", dz)
	}
	m.SetGamepadSource(fakePad{ok: true, state: GamepadState{Connected: true, LeftX: 0.05}})
	if st := m.GetGamepadState(); st.LeftX != 0.05 {
		t.Errorf("LeftX = %v, expected raw 0.05 without a deadzone", st.LeftX)
	}
}
