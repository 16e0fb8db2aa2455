// Package physics holds the collision and movement primitives shared by
// the games. Everything works in float64 cell units and seconds.
package physics

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Axis names the velocity component a collision reflects.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// Overlaps reports whether a and b overlap. Touching edges do not count.
func Overlaps(a, b core.Rect) bool {
	return a.Intersects(b)
}

// MinOverlapAxis returns the axis along which a and b overlap least, with
// the overlap depths. Ties resolve to AxisY. Non-overlapping rectangles
// return AxisNone.
func MinOverlapAxis(a, b core.Rect) (Axis, float64, float64) {
	if !Overlaps(a, b) {
		return AxisNone, 0, 0
	}
	dx := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	dy := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if dx < dy {
		return AxisX, dx, dy
	}
	return AxisY, dx, dy
}

// Ball is a moving circle.
type Ball struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
}

// Bounds returns the ball's bounding box.
func (b Ball) Bounds() core.Rect {
	return core.RectAround(b.Pos.X, b.Pos.Y, 2*b.Radius, 2*b.Radius)
}

// Sweep is the outcome of SweepBall.
type Sweep struct {
	Pos  core.Vec // final position, or contact position on a hit
	Vel  core.Vec // velocity with the hit axis reflected
	Hit  int      // index of the obstacle hit, or -1
	Axis Axis
}

// Struck reports whether the sweep hit an obstacle.
func (s Sweep) Struck() bool {
	return s.Hit >= 0
}

// SweepBall moves b by Vel*dt in sub-steps no longer than its radius and
// stops at the first obstacle it overlaps. Obstacles are tested in slice
// order, so callers control priority. On contact the ball is placed flush
// against the struck face and the velocity component on that axis is
// pointed away from the obstacle.
func SweepBall(b Ball, dt float64, obstacles []core.Rect) Sweep {
	res := Sweep{Pos: b.Pos, Vel: b.Vel, Hit: -1}
	if dt <= 0 {
		return res
	}
	move := b.Vel.Scale(dt)
	dist := move.Len()
	if dist == 0 {
		return res
	}

	step := b.Radius
	if step <= 0 {
		step = dist
	}
	n := int(math.Ceil(dist / step))
	prev := b.Pos
	for i := 1; i <= n; i++ {
		p := b.Pos.Add(move.Scale(float64(i) / float64(n)))
		box := core.RectAround(p.X, p.Y, 2*b.Radius, 2*b.Radius)
		prevBox := core.RectAround(prev.X, prev.Y, 2*b.Radius, 2*b.Radius)
		for idx, o := range obstacles {
			if !Overlaps(box, o) {
				continue
			}
			axis := hitAxis(prevBox, box, b.Vel, o)
			res.Hit = idx
			res.Axis = axis
			res.Pos, res.Vel = contact(p, prev, b.Vel, b.Radius, o, axis)
			return res
		}
		prev = p
	}
	res.Pos = b.Pos.Add(move)
	return res
}

// hitAxis picks the face of o that a ball travelling from prev to cur
// struck. An axis the ball was already clear of, and moving in on, wins.
// Otherwise the shallower overlap decides, unless the ball has no approach
// speed along it.
func hitAxis(prev, cur core.Rect, vel core.Vec, o core.Rect) Axis {
	inX := (prev.Right() <= o.X && vel.X > 0) || (prev.X >= o.Right() && vel.X < 0)
	inY := (prev.Bottom() <= o.Y && vel.Y > 0) || (prev.Y >= o.Bottom() && vel.Y < 0)
	switch {
	case inX && !inY:
		return AxisX
	case inY && !inX:
		return AxisY
	}

	axis, _, _ := MinOverlapAxis(cur, o)
	cx, cy := cur.Center()
	ox, oy := o.Center()
	approachX := (vel.X > 0 && cx < ox) || (vel.X < 0 && cx > ox)
	approachY := (vel.Y > 0 && cy < oy) || (vel.Y < 0 && cy > oy)
	if axis == AxisX && !approachX && approachY {
		return AxisY
	}
	if axis == AxisY && !approachY && approachX {
		return AxisX
	}
	return axis
}

// contact places the ball flush against the face of o on the side prev
// came from and points the velocity on axis away from o.
func contact(p, prev, vel core.Vec, r float64, o core.Rect, axis Axis) (core.Vec, core.Vec) {
	ox, oy := o.Center()
	if axis == AxisX {
		if prev.X < ox {
			p.X = o.X - r
			vel.X = -math.Abs(vel.X)
		} else {
			p.X = o.Right() + r
			vel.X = math.Abs(vel.X)
		}
		return p, vel
	}
	if prev.Y < oy {
		p.Y = o.Y - r
		vel.Y = -math.Abs(vel.Y)
	} else {
		p.Y = o.Bottom() + r
		vel.Y = math.Abs(vel.Y)
	}
	return p, vel
}
