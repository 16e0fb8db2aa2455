package physics

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Side is a bit set of field walls.
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideRight
	SideTop
	SideBottom

	SideNone Side = 0
	SideAll       = SideLeft | SideRight | SideTop | SideBottom
)

// Has reports whether s includes o.
func (s Side) Has(o Side) bool {
	return s&o != 0
}

// ReflectInBounds keeps a circle of radius r inside bounds on the walls
// listed in walls. A circle crossing one of those walls is clamped to it
// and the velocity component pointing out of the field is flipped.
// The returned set lists every wall that was struck.
func ReflectInBounds(pos, vel core.Vec, r float64, bounds core.Rect, walls Side) (core.Vec, core.Vec, Side) {
	var hit Side
	if walls.Has(SideLeft) && pos.X-r < bounds.X {
		pos.X = bounds.X + r
		vel.X = math.Abs(vel.X)
		hit |= SideLeft
	}
	if walls.Has(SideRight) && pos.X+r > bounds.Right() {
		pos.X = bounds.Right() - r
		vel.X = -math.Abs(vel.X)
		hit |= SideRight
	}
	if walls.Has(SideTop) && pos.Y-r < bounds.Y {
		pos.Y = bounds.Y + r
		vel.Y = math.Abs(vel.Y)
		hit |= SideTop
	}
	if walls.Has(SideBottom) && pos.Y+r > bounds.Bottom() {
		pos.Y = bounds.Bottom() - r
		vel.Y = -math.Abs(vel.Y)
		hit |= SideBottom
	}
	return pos, vel, hit
}

// Escaped returns the walls of bounds that a circle at pos has fully left.
func Escaped(pos core.Vec, r float64, bounds core.Rect) Side {
	var s Side
	if pos.X+r < bounds.X {
		s |= SideLeft
	}
	if pos.X-r > bounds.Right() {
		s |= SideRight
	}
	if pos.Y+r < bounds.Y {
		s |= SideTop
	}
	if pos.Y-r > bounds.Bottom() {
		s |= SideBottom
	}
	return s
}

// PaddleBounce computes the outgoing angle and speed for a ball striking a
// paddle at offset from its center. The angle is proportional to the
// normalized offset and capped at ±maxAngle radians; the speed grows by
// speedUp per hit and saturates at maxSpeed.
func PaddleBounce(offset, halfWidth, maxAngle, speed, speedUp, maxSpeed float64) (angle, newSpeed float64) {
	norm := 0.0
	if halfWidth > 0 {
		norm = core.ClampF(offset/halfWidth, -1, 1)
	}
	angle = norm * maxAngle
	newSpeed = math.Min(speed+speedUp, maxSpeed)
	return angle, newSpeed
}

// VerticalLaunch returns a velocity leaving a horizontal paddle upward at
// angle radians from vertical.
func VerticalLaunch(angle, speed float64) core.Vec {
	return core.V(math.Sin(angle)*speed, -math.Cos(angle)*speed)
}

// HorizontalLaunch returns a velocity leaving a vertical paddle at angle
// radians from horizontal, heading right when dir > 0 and left otherwise.
func HorizontalLaunch(angle, speed float64, dir int) core.Vec {
	vx := math.Cos(angle) * speed
	if dir < 0 {
		vx = -vx
	}
	return core.V(vx, math.Sin(angle)*speed)
}
