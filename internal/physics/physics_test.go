package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

func TestOverlapsStrict(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Rect
		want bool
	}{
		{"sharing right edge", core.NewRect(0, 0, 10, 10), core.NewRect(10, 0, 5, 5), false},
		{"sharing bottom edge", core.NewRect(0, 0, 10, 10), core.NewRect(0, 10, 5, 5), false},
		{"corner touch", core.NewRect(0, 0, 10, 10), core.NewRect(10, 10, 5, 5), false},
		{"tiny overlap", core.NewRect(0, 0, 10, 10), core.NewRect(9.999, 0, 5, 5), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestMinOverlapAxis(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Rect
		want Axis
	}{
		{"shallow horizontal", core.NewRect(0, 0, 4, 4), core.NewRect(3.5, 0, 4, 4), AxisX},
		{"shallow vertical", core.NewRect(0, 0, 4, 4), core.NewRect(0, 3.5, 4, 4), AxisY},
		{"tie reflects y", core.NewRect(0, 0, 2, 2), core.NewRect(1, 1, 2, 2), AxisY},
		{"apart", core.NewRect(0, 0, 1, 1), core.NewRect(5, 5, 1, 1), AxisNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _, _ := MinOverlapAxis(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("MinOverlapAxis() = %s, expected %s", got, tc.want)
			}
		})
	}
}

func TestSweepBallContact(t *testing.T) {
	b := Ball{Pos: core.V(5, 5), Vel: core.V(0, 20), Radius: 0.5}
	wall := core.NewRect(0, 10, 20, 1)

	s := SweepBall(b, 1, []core.Rect{wall})
	if !s.Struck() || s.Hit != 0 {
		t.Fatalf("expected a hit on obstacle 0, got %+v", s)
	}
	if s.Axis != AxisY {
		t.Errorf("axis = %s, expected y", s.Axis)
	}
	if s.Pos.Y != 9.5 {
		t.Errorf("contact y = %v, expected 9.5 (flush with the wall)", s.Pos.Y)
	}
	if s.Vel.Y != -20 || s.Vel.X != 0 {
		t.Errorf("velocity = %+v, expected (0, -20)", s.Vel)
	}
}

func TestSweepBallNoTunneling(t *testing.T) {
	// A thin obstacle and a fast ball: a single full-step test would skip it.
	b := Ball{Pos: core.V(5, 0), Vel: core.V(0, 300), Radius: 0.5}
	thin := core.NewRect(0, 10, 20, 0.1)

	s := SweepBall(b, 0.1, []core.Rect{thin})
	if !s.Struck() {
		t.Fatal("fast ball passed through a thin obstacle")
	}
	if s.Pos.Y > 9.5 {
		t.Errorf("contact y = %v, should not pass the top face", s.Pos.Y)
	}
}

func TestSweepBallFirstObstacleWins(t *testing.T) {
	b := Ball{Pos: core.V(0, 5), Vel: core.V(10, 0), Radius: 0.5}
	near := core.NewRect(3, 0, 1, 10)
	far := core.NewRect(6, 0, 1, 10)

	s := SweepBall(b, 1, []core.Rect{far, near})
	if s.Hit != 1 {
		t.Errorf("hit index = %d, expected the nearer obstacle (1)", s.Hit)
	}
	if s.Axis != AxisX || s.Pos.X != 2.5 || s.Vel.X != -10 {
		t.Errorf("unexpected sweep result %+v", s)
	}
}

func TestSweepBallCornerClip(t *testing.T) {
	// Moving straight up, the ball clips the brick's lower-left corner by
	// less than the brick is tall. It must bounce off the bottom face.
	b := Ball{Pos: core.V(9.6, 5), Vel: core.V(0, -30), Radius: 0.5}
	brick := core.NewRect(10, 0, 7, 1)

	s := SweepBall(b, 0.25, []core.Rect{brick})
	if !s.Struck() {
		t.Fatal("expected a hit")
	}
	if s.Axis != AxisY {
		t.Errorf("axis = %s, expected y", s.Axis)
	}
	if s.Pos.X != 9.6 || s.Pos.Y != 1.5 {
		t.Errorf("contact = %+v, expected (9.6, 1.5) under the brick", s.Pos)
	}
	if s.Vel != core.V(0, 30) {
		t.Errorf("velocity = %+v, expected (0, 30)", s.Vel)
	}
}

func TestSweepBallSideEntry(t *testing.T) {
	// Level flight into a tall wall from the right: the x component turns
	// around and the ball stays on the right.
	b := Ball{Pos: core.V(10, 5.2), Vel: core.V(-20, 0), Radius: 0.5}
	wall := core.NewRect(2, 5, 1, 8)

	s := SweepBall(b, 1, []core.Rect{wall})
	if s.Axis != AxisX {
		t.Fatalf("axis = %s, expected x", s.Axis)
	}
	if s.Pos.X != 3.5 || s.Vel.X != 20 {
		t.Errorf("unexpected sweep result %+v", s)
	}
}

func TestSweepBallMiss(t *testing.T) {
	b := Ball{Pos: core.V(0, 0), Vel: core.V(2, 1), Radius: 0.5}
	s := SweepBall(b, 0.5, []core.Rect{core.NewRect(10, 10, 1, 1)})
	if s.Struck() {
		t.Fatal("unexpected hit")
	}
	if s.Pos != core.V(1, 0.5) {
		t.Errorf("Pos = %+v, expected (1, 0.5)", s.Pos)
	}

	still := SweepBall(b, 0, nil)
	if still.Pos != b.Pos {
		t.Error("dt=0 should not move the ball")
	}
}

func TestReflectInBounds(t *testing.T) {
	bounds := core.NewRect(0, 0, 40, 20)

	pos, vel, hit := ReflectInBounds(core.V(0.2, 10), core.V(-5, 1), 0.5, bounds, SideAll)
	if !hit.Has(SideLeft) || pos.X != 0.5 || vel.X != 5 {
		t.Errorf("left wall: pos=%+v vel=%+v hit=%b", pos, vel, hit)
	}

	pos, vel, hit = ReflectInBounds(core.V(10, 19.8), core.V(1, 3), 0.5, bounds, SideLeft|SideRight|SideTop)
	if hit != SideNone || pos.Y != 19.8 || vel.Y != 3 {
		t.Error("an open bottom should not reflect")
	}
	if Escaped(core.V(10, 21), 0.5, bounds) != SideBottom {
		t.Error("ball below the field should have escaped the bottom")
	}
}

func TestPaddleBounce(t *testing.T) {
	maxAngle := math.Pi / 3

	angle, speed := PaddleBounce(0, 4, maxAngle, 10, 1, 20)
	if angle != 0 || speed != 11 {
		t.Errorf("center hit = (%v, %v), expected (0, 11)", angle, speed)
	}

	angle, _ = PaddleBounce(8, 4, maxAngle, 10, 1, 20)
	if angle != maxAngle {
		t.Errorf("edge hit angle = %v, expected clamped %v", angle, maxAngle)
	}

	angle, _ = PaddleBounce(-2, 4, maxAngle, 10, 1, 20)
	if math.Abs(angle+maxAngle/2) > 1e-12 {
		t.Errorf("half-left hit angle = %v, expected %v", angle, -maxAngle/2)
	}

	_, speed = PaddleBounce(0, 4, maxAngle, 19.5, 1, 20)
	if speed != 20 {
		t.Errorf("speed = %v, expected saturated 20", speed)
	}

	v := VerticalLaunch(0, 10)
	if v.X != 0 || v.Y != -10 {
		t.Errorf("VerticalLaunch(0) = %+v, expected straight up", v)
	}
}

func TestTunnelCollides(t *testing.T) {
	slices := []TunnelSlice{
		{X: 0, Width: 5, Top: 2, Bottom: 12},
		{X: 5, Width: 5, Top: 6, Bottom: 16},
	}

	tests := []struct {
		name string
		box  core.Rect
		want bool
	}{
		{"inside first", core.NewRect(1, 4, 2, 2), false},
		{"above first", core.NewRect(1, 1, 2, 2), true},
		{"below second", core.NewRect(6, 15, 2, 2), true},
		{"straddling, clear of both", core.NewRect(4, 7, 2, 2), false},
		{"straddling, hits second roof", core.NewRect(4, 5, 2, 2), true},
		{"edge touch is not overlap", core.NewRect(10, 0, 2, 2), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TunnelCollides(slices, tc.box); got != tc.want {
				t.Errorf("TunnelCollides() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestGridClearRows(t *testing.T) {
	g := NewGrid(4, 5)
	for x := 0; x < 4; x++ {
		g.Set(x, 4, 1)
		g.Set(x, 2, 1)
	}
	g.Set(1, 3, 7)
	g.Set(2, 1, 9)

	rows := g.FullRows()
	if len(rows) != 2 || rows[0] != 2 || rows[1] != 4 {
		t.Fatalf("FullRows() = %v, expected [2 4]", rows)
	}

	if n := g.ClearRows(rows); n != 2 {
		t.Errorf("ClearRows() = %d, expected 2", n)
	}
	if g.At(1, 4) != 7 {
		t.Errorf("row 3 should drop to row 4, got %d", g.At(1, 4))
	}
	if g.At(2, 3) != 9 {
		t.Errorf("row 1 should drop to row 3, got %d", g.At(2, 3))
	}
	if g.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", g.Count())
	}
	for x := 0; x < 4; x++ {
		if g.At(x, 0) != 0 || g.At(x, 1) != 0 {
			t.Error("top rows should be empty after clearing")
		}
	}
}

func TestGridFits(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(1, 3, 1)
	shape := []Point{{0, 0}, {1, 0}}

	if !g.Fits(shape, Point{0, -1}) {
		t.Error("cells above the top should be allowed")
	}
	if g.Fits(shape, Point{3, 0}) {
		t.Error("shape past the right wall should not fit")
	}
	if g.Fits(shape, Point{0, 3}) {
		t.Error("shape overlapping a filled cell should not fit")
	}
	if g.Fits(shape, Point{0, 4}) {
		t.Error("shape below the floor should not fit")
	}
}
