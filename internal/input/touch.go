package input

import (
	"math"
	"time"
)

// GestureType classifies a completed touch.
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipe
	GestureHold
)

// String returns the gesture name.
func (g GestureType) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureSwipe:
		return "swipe"
	case GestureHold:
		return "hold"
	default:
		return "none"
	}
}

// Gesture is the result of a completed touch. Direction is set for swipes
// only and is one of KeyUp, KeyDown, KeyLeft, KeyRight.
type Gesture struct {
	Type      GestureType
	Direction string
	X, Y      float64 // end position
	Distance  float64
	Duration  time.Duration
}

type touchTracker struct {
	active    bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	startedAt time.Time
}

// TouchStart begins tracking a touch. Only one touch is tracked.
func (m *Manager) TouchStart(x, y float64, now time.Time) {
	m.touch = touchTracker{
		active:    true,
		startX:    x,
		startY:    y,
		lastX:     x,
		lastY:     y,
		startedAt: now,
	}
}

// TouchMove updates the tracked touch position.
func (m *Manager) TouchMove(x, y float64) {
	if !m.touch.active {
		return
	}
	m.touch.lastX, m.touch.lastY = x, y
}

// TouchActive reports whether a touch is in progress.
func (m *Manager) TouchActive() bool {
	return m.touch.active
}

// TouchEnd classifies the touch and stores it as the last gesture.
// Ending without a started touch yields GestureNone.
func (m *Manager) TouchEnd(x, y float64, now time.Time) Gesture {
	if !m.touch.active {
		return Gesture{}
	}
	t := m.touch
	m.touch = touchTracker{}

	g := classify(m.opts, x-t.startX, y-t.startY, now.Sub(t.startedAt))
	g.X, g.Y = x, y
	m.gesture = g
	return g
}

func classify(o Options, dx, dy float64, dur time.Duration) Gesture {
	dist := math.Hypot(dx, dy)
	g := Gesture{Distance: dist, Duration: dur}

	switch {
	case dist >= o.SwipeMinDistance:
		g.Type = GestureSwipe
		g.Direction = swipeDirection(dx, dy)
	case dur >= o.HoldMinDuration:
		g.Type = GestureHold
	case dist <= o.TapMaxDistance && dur <= o.TapMaxDuration:
		g.Type = GestureTap
	case dur > o.TapMaxDuration:
		g.Type = GestureHold
	default:
		g.Type = GestureTap
	}
	return g
}

// swipeDirection picks the dominant axis; ties go horizontal.
func swipeDirection(dx, dy float64) string {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return KeyLeft
		}
		return KeyRight
	}
	if dy < 0 {
		return KeyUp
	}
	return KeyDown
}

// LastGesture returns the most recent unconsumed gesture.
func (m *Manager) LastGesture() Gesture {
	return m.gesture
}

// ConsumeGesture returns the last gesture and clears it.
func (m *Manager) ConsumeGesture() Gesture {
	g := m.gesture
	m.gesture = Gesture{}
	return g
}
