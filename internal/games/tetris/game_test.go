package tetris

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newRunning(t *testing.T, seed int64) (*Game, *input.Manager) {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	if !g.Phase().Start() {
		t.Fatal("could not start round")
	}
	return g, input.NewManager(input.DefaultOptions())
}

func fillRow(b *physics.Grid, y int) {
	for x := range b.W {
		b.Set(x, y, int(KindI))
	}
}

func rowOf(b *physics.Grid, y int) []int {
	row := make([]int, b.W)
	for x := range b.W {
		row[x] = b.At(x, y)
	}
	return row
}

func TestLineClear(t *testing.T) {
	g, _ := newRunning(t, 1)
	b := g.board
	full := b.H - 2

	// Every other row is partially filled with a distinct marker.
	for y := range b.H {
		if y == full {
			fillRow(b, y)
			continue
		}
		b.Set(y%b.W, y, int(KindT))
		b.Set((y+3)%b.W, y, int(KindS))
	}
	before := make([][]int, b.H)
	for y := range b.H {
		before[y] = rowOf(b, y)
	}

	if n := g.clearLines(); n != 1 {
		t.Fatalf("cleared %d rows, expected 1", n)
	}
	if g.Score != 100*g.Level {
		t.Errorf("Score = %d, expected %d", g.Score, 100*g.Level)
	}

	if !slices.Equal(rowOf(b, b.H-1), before[b.H-1]) {
		t.Error("row below the cleared line should not move")
	}
	for y := 1; y <= full; y++ {
		if !slices.Equal(rowOf(b, y), before[y-1]) {
			t.Errorf("row %d = %v, expected old row %d %v", y, rowOf(b, y), y-1, before[y-1])
		}
	}
	for x := range b.W {
		if b.At(x, 0) != 0 {
			t.Fatalf("top row should be empty after the clear, got %v", rowOf(b, 0))
		}
	}
}

func TestLineScoreTable(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
	}
	for _, tt := range tests {
		g, _ := newRunning(t, 1)
		g.Level = 3
		for i := range tt.lines {
			fillRow(g.board, g.board.H-1-i)
		}
		g.board.Set(0, g.board.H-1-tt.lines, int(KindO))

		if n := g.clearLines(); n != tt.lines {
			t.Fatalf("cleared %d, expected %d", n, tt.lines)
		}
		if g.Score != tt.want*3 {
			t.Errorf("%d lines at level 3: Score = %d, expected %d", tt.lines, g.Score, tt.want*3)
		}
		if g.board.At(0, g.board.H-1) != int(KindO) {
			t.Errorf("%d lines: remaining block should fall to the floor", tt.lines)
		}
	}
}

func TestLevelFromLines(t *testing.T) {
	g, _ := newRunning(t, 1)
	slow := g.gravityInterval()
	g.lines = g.cfg.Timing.LinesPerLevel - 1
	fillRow(g.board, g.board.H-1)

	g.clearLines()

	if g.Level != 2 {
		t.Fatalf("Level = %d, expected 2", g.Level)
	}
	if g.gravityInterval() >= slow {
		t.Error("gravity should speed up with the level")
	}
	if !slices.Contains(g.DrainCues(), core.CueLevelUp) {
		t.Error("level up should emit CueLevelUp")
	}
}

func TestRotationCycle(t *testing.T) {
	for k := KindI; k < kindCount; k++ {
		start := Piece{Kind: k}
		p := start
		for range 4 {
			if len(p.Cells()) != 4 {
				t.Fatalf("%v rotation %d has %d cells", k, p.Rot, len(p.Cells()))
			}
			p.Rot = (p.Rot + 1) % 4
		}
		if !slices.Equal(p.Cells(), start.Cells()) {
			t.Errorf("%v: four clockwise turns should return to the spawn state", k)
		}
	}
}

func TestWallKick(t *testing.T) {
	g, _ := newRunning(t, 1)
	// Vertical I against the left wall; the flat state only fits two
	// columns to the right.
	g.cur = Piece{Kind: KindI, Rot: 1, Pos: physics.Point{X: -2, Y: 5}}
	if !g.fits(g.cur) {
		t.Fatal("setup piece should fit")
	}

	if !g.rotate(1) {
		t.Fatal("rotation should succeed with a kick")
	}
	if g.cur.Rot != 2 || g.cur.Pos.X != 0 {
		t.Errorf("rot=%d x=%d, expected rot 2 kicked to x=0", g.cur.Rot, g.cur.Pos.X)
	}
}

func TestRotationBlocked(t *testing.T) {
	g, _ := newRunning(t, 1)
	g.cur = Piece{Kind: KindT, Pos: physics.Point{X: 3, Y: 10}}
	// Box the piece in so no kick fits.
	for y := 8; y < g.board.H; y++ {
		for x := range g.board.W {
			g.board.Set(x, y, int(KindZ))
		}
	}
	for _, c := range g.cur.Cells() {
		p := c.Add(g.cur.Pos)
		g.board.Set(p.X, p.Y, 0)
	}

	if g.rotate(1) {
		t.Error("rotation should fail when every kick is blocked")
	}
	if g.cur.Rot != 0 || g.cur.Pos != (physics.Point{X: 3, Y: 10}) {
		t.Errorf("failed rotation moved the piece: %+v", g.cur)
	}
}

func TestHardDrop(t *testing.T) {
	g, in := newRunning(t, 1)
	d := g.dropDistance()

	in.KeyDown(input.KeySpace, t0)
	g.Tick(1.0/60, in)

	if g.Score != d*hardDropPoints {
		t.Errorf("Score = %d, expected %d", g.Score, d*hardDropPoints)
	}
	if g.board.Count() != 4 {
		t.Errorf("board has %d blocks, expected the locked piece", g.board.Count())
	}
	if g.cur.Pos.Y != 0 {
		t.Error("next piece should spawn at the top")
	}
}

func TestGravity(t *testing.T) {
	g, in := newRunning(t, 1)

	g.Tick(g.gravityInterval(), in)
	if g.cur.Pos.Y != 1 {
		t.Errorf("y = %d after one gravity interval, expected 1", g.cur.Pos.Y)
	}
}

func TestSoftDrop(t *testing.T) {
	g, in := newRunning(t, 1)
	in.KeyDown(input.KeyDown, t0)

	g.Tick(0.1, in)

	if g.cur.Pos.Y != 3 {
		t.Errorf("y = %d, expected 3 rows of soft drop", g.cur.Pos.Y)
	}
	if g.Score != 3*softDropPoints {
		t.Errorf("Score = %d, expected %d", g.Score, 3*softDropPoints)
	}
}

func TestLockDelay(t *testing.T) {
	g, in := newRunning(t, 1)
	g.cur.Pos.Y += g.dropDistance()
	delay := g.cfg.Timing.LockDelay

	g.Tick(delay/2, in)
	if g.board.Count() != 0 {
		t.Fatal("piece locked before the lock delay")
	}
	g.Tick(delay/2+0.01, in)
	if g.board.Count() != 4 {
		t.Errorf("board has %d blocks, expected the piece locked", g.board.Count())
	}
}

func TestTapShiftsOnce(t *testing.T) {
	g, in := newRunning(t, 1)
	x := g.cur.Pos.X

	in.KeyDown(input.KeyLeft, t0)
	in.KeyUp(input.KeyLeft)
	g.Tick(0.01, in)

	if g.cur.Pos.X != x-1 {
		t.Errorf("x = %d, expected %d", g.cur.Pos.X, x-1)
	}
}

func TestAutoShiftToWall(t *testing.T) {
	g, in := newRunning(t, 1)
	x := g.cur.Pos.X

	in.KeyDown(input.KeyRight, t0)
	g.Tick(0.01, in)
	if g.cur.Pos.X != x+1 {
		t.Fatalf("initial press should shift once, x = %d", g.cur.Pos.X)
	}

	g.Tick(g.cfg.Timing.DAS/2, in)
	if g.cur.Pos.X != x+1 {
		t.Fatalf("auto-shift started before DAS, x = %d", g.cur.Pos.X)
	}

	for range 10 {
		g.Tick(0.1, in)
	}
	if g.shift(1) {
		t.Errorf("held right should reach the wall, x = %d", g.cur.Pos.X)
	}
}

func TestHold(t *testing.T) {
	g, in := newRunning(t, 1)
	first := g.cur.Kind
	next := g.queue[0]

	in.KeyDown(input.KeyHold, t0)
	g.Tick(0.01, in)
	if g.hold != first || g.cur.Kind != next {
		t.Fatalf("hold=%v cur=%v, expected hold=%v cur=%v", g.hold, g.cur.Kind, first, next)
	}

	in.KeyDown(input.KeyHold, t0.Add(20*time.Millisecond))
	g.Tick(0.01, in)
	if g.hold != first || g.cur.Kind != next {
		t.Error("hold should only work once per piece")
	}
}

func TestBagHoldsEveryPiece(t *testing.T) {
	g, _ := newRunning(t, 77)
	seen := []Kind{g.cur.Kind}
	seen = append(seen, g.queue[:6]...)
	slices.Sort(seen)

	want := []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
	if !slices.Equal(seen, want) {
		t.Errorf("first bag = %v, expected each piece once", seen)
	}
}

func TestSpawnCollisionEndsRound(t *testing.T) {
	g, _ := newRunning(t, 1)
	for y := range 3 {
		for x := range g.board.W - 1 {
			g.board.Set(x, y, int(KindZ))
		}
	}

	g.spawn(KindT)

	if !g.State().GameOver() {
		t.Errorf("phase = %v, expected GameOver", g.Phase().Phase())
	}
}

func TestDeterminism(t *testing.T) {
	keys := []string{input.KeyLeft, input.KeyUp, input.KeyRight, input.KeySpace, input.KeyHold, input.KeyFire}
	run := func() uint64 {
		g, in := newRunning(t, 31337)
		for i := range 3000 {
			if i%23 == 0 {
				k := keys[(i/23)%len(keys)]
				in.KeyDown(k, t0.Add(time.Duration(i)*16*time.Millisecond))
				in.KeyUp(k)
			}
			g.Tick(1.0/60, in)
			in.Update()
			if !g.Phase().Is(core.PhaseRunning) {
				break
			}
		}
		return kit.HashSnapshot(g.Snapshot())
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and inputs produced different snapshots: %x vs %x", a, b)
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10})
	g.Phase().Start()
	g.Tick(1, input.NewManager(input.DefaultOptions()))

	g.Render(core.NewScreen(20, 10))
	if g.Clock != 0 {
		t.Error("undersized game should not simulate")
	}
}
