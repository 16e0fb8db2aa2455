// Package tetris implements a falling-block puzzle game with SRS rotation,
// a 7-bag randomizer, hold, ghost piece and DAS auto-shift.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/kit"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/physics"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	cellW        = 2 // screen columns per board cell
	panelW       = 14
	previewCount = 3
	maxLockMoves = 15 // moves that may reset the lock timer per piece

	softDropPoints = 1 // per row
	hardDropPoints = 2 // per row
)

// Game implements the Tetris game logic.
type Game struct {
	kit.Base

	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager

	board    *physics.Grid
	cur      Piece
	queue    []Kind
	hold     Kind
	holdUsed bool

	gravityTimer float64
	lockTimer    float64
	lockMoves    int
	lines        int

	dasDir   int
	dasTimer float64
	arrTimer float64

	offX, offY int
	tooSmall   bool
	minW, minH int
}

// New creates a new Tetris game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.cfg, g.ConfigErr = config.LoadTetris()
	g.ResetBase(runtime, 0)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	w := core.Max(g.cfg.Board.Width, 4)
	h := core.Max(g.cfg.Board.Height, 4)
	g.board = physics.NewGrid(w, h)

	g.minW = w*cellW + 2 + panelW
	g.minH = h + 2
	g.tooSmall = runtime.ScreenW < g.minW || runtime.ScreenH < g.minH
	g.offX = (runtime.ScreenW - g.minW) / 2
	g.offY = (runtime.ScreenH - g.minH) / 2

	g.queue = g.queue[:0]
	g.hold = KindNone
	g.lines = 0
	g.gravityTimer = 0
	g.dasDir, g.dasTimer, g.arrTimer = 0, 0, 0
	g.spawn(g.nextKind())
}

// nextKind pops the queue, refilling it from a shuffled bag of all seven
// pieces so every kind appears once per bag.
func (g *Game) nextKind() Kind {
	for len(g.queue) <= previewCount {
		for _, i := range g.Rng.Perm(int(kindCount) - 1) {
			g.queue = append(g.queue, Kind(i+1))
		}
	}
	k := g.queue[0]
	g.queue = append(g.queue[:0], g.queue[1:]...)
	return k
}

// spawn places a new piece at the top center. A spawn that does not fit
// ends the round.
func (g *Game) spawn(k Kind) {
	g.cur = Piece{Kind: k, Pos: physics.Point{X: (g.board.W - boxSize(k)) / 2}}
	g.gravityTimer = 0
	g.lockTimer = 0
	g.lockMoves = 0
	if !g.fits(g.cur) {
		g.GameOver()
	}
}

func (g *Game) fits(p Piece) bool {
	return g.board.Fits(p.Cells(), p.Pos)
}

// try moves the current piece to p if it fits. A successful move while
// resting on the stack resets the lock timer a limited number of times.
func (g *Game) try(p Piece) bool {
	if !g.fits(p) {
		return false
	}
	g.cur = p
	if g.lockTimer > 0 && g.lockMoves < maxLockMoves {
		g.lockTimer = 0
		g.lockMoves++
	}
	return true
}

func (g *Game) shift(dx int) bool {
	p := g.cur
	p.Pos.X += dx
	return g.try(p)
}

// rotate turns the piece by dir quarter turns (1 clockwise, -1 counter),
// trying each kick offset in order.
func (g *Game) rotate(dir int) bool {
	p := g.cur
	p.Rot = (p.Rot + dir + 4) % 4
	for _, k := range kicks {
		q := p
		q.Pos = p.Pos.Add(k)
		if g.try(q) {
			return true
		}
	}
	return false
}

// dropDistance returns how many rows the piece can fall.
func (g *Game) dropDistance() int {
	p := g.cur
	n := 0
	for {
		p.Pos.Y++
		if !g.fits(p) {
			return n
		}
		n++
	}
}

// gravityInterval returns seconds per row at the current level.
func (g *Game) gravityInterval() float64 {
	t := g.cfg.Timing
	base := t.Gravity - float64(g.Level-1)*t.GravityPerLevel
	base = max(base, t.MinGravity)
	return max(g.difficulty.Interval(base, g.Score, g.Clock), 0.001)
}

// Tick advances the game by dt seconds: hold and rotation first, then
// shifting with auto-repeat, then drops and gravity, then locking.
func (g *Game) Tick(dt float64, in *input.Manager) {
	if g.tooSmall {
		return
	}
	g.Advance(dt)

	if in.ConsumeBufferedInput(input.KeyHold) {
		g.holdPiece()
	}
	for k := in.ConsumeAny(input.KeyUp, input.KeyFire); k != ""; k = in.ConsumeAny(input.KeyUp, input.KeyFire) {
		if k == input.KeyUp {
			g.rotate(1)
		} else {
			g.rotate(-1)
		}
	}
	g.handleShift(dt, in)
	if !g.Phase().Is(core.PhaseRunning) {
		return
	}

	if in.ConsumeAny(input.KeySpace, input.KeyDrop) != "" {
		g.hardDrop()
		return
	}
	if gs := in.ConsumeGesture(); gs.Type != input.GestureNone {
		if g.applyGesture(gs) {
			return
		}
	}

	interval := g.gravityInterval()
	soft := in.IsPressed(input.KeyDown)
	if soft {
		interval = min(interval, g.cfg.Timing.SoftDropInterval)
	}

	g.gravityTimer += dt
	for g.gravityTimer >= interval {
		g.gravityTimer -= interval
		p := g.cur
		p.Pos.Y++
		if !g.fits(p) {
			g.gravityTimer = 0
			break
		}
		g.cur = p
		if soft {
			g.Score += softDropPoints
		}
	}

	if g.dropDistance() == 0 {
		g.lockTimer += dt
		if g.lockTimer >= g.cfg.Timing.LockDelay {
			g.lock()
		}
	} else {
		g.lockTimer = 0
	}
}

// handleShift moves the piece left or right. Each buffered press shifts
// once; holding a direction past the DAS delay repeats every ARR seconds,
// and buffered repeats of a held key are then ignored.
func (g *Game) handleShift(dt float64, in *input.Manager) {
	dir := 0
	left, right := in.IsPressed(input.KeyLeft), in.IsPressed(input.KeyRight)
	switch {
	case left && !right:
		dir = -1
	case right && !left:
		dir = 1
	}
	if dir != g.dasDir {
		g.dasDir = dir
		g.dasTimer = 0
		g.arrTimer = 0
	}

	t := g.cfg.Timing
	repeating := dir != 0 && g.dasTimer >= t.DAS
	for k := in.ConsumeAny(input.KeyLeft, input.KeyRight); k != ""; k = in.ConsumeAny(input.KeyLeft, input.KeyRight) {
		if repeating {
			continue
		}
		if k == input.KeyLeft {
			g.shift(-1)
		} else {
			g.shift(1)
		}
	}

	if dir == 0 {
		return
	}
	g.dasTimer += dt
	if g.dasTimer < t.DAS {
		return
	}
	if t.ARR <= 0 {
		for g.shift(dir) {
		}
		return
	}
	g.arrTimer += dt
	for g.arrTimer >= t.ARR {
		g.arrTimer -= t.ARR
		if !g.shift(dir) {
			g.arrTimer = 0
			break
		}
	}
}

// applyGesture maps touch input: tap rotates, horizontal swipes shift,
// swipe down hard drops. It reports whether the piece was locked.
func (g *Game) applyGesture(gs input.Gesture) bool {
	switch gs.Type {
	case input.GestureTap:
		g.rotate(1)
	case input.GestureSwipe:
		switch gs.Direction {
		case input.KeyLeft:
			g.shift(-1)
		case input.KeyRight:
			g.shift(1)
		case input.KeyDown:
			g.hardDrop()
			return true
		case input.KeyUp:
			g.holdPiece()
		}
	}
	return false
}

// hardDrop drops the piece to the stack and locks it at once.
func (g *Game) hardDrop() {
	n := g.dropDistance()
	g.cur.Pos.Y += n
	g.Score += n * hardDropPoints
	g.lock()
}

// holdPiece swaps the current piece with the held one, once per piece.
func (g *Game) holdPiece() {
	if g.holdUsed {
		return
	}
	g.holdUsed = true
	prev := g.hold
	g.hold = g.cur.Kind
	if prev == KindNone {
		g.spawn(g.nextKind())
	} else {
		g.spawn(prev)
	}
}

// lock writes the piece into the board, clears full lines and spawns the
// next piece.
func (g *Game) lock() {
	g.board.Stamp(g.cur.Cells(), g.cur.Pos, int(g.cur.Kind))
	g.Emit(core.CueHit)

	// A piece locked entirely above the visible board tops out.
	above := true
	for _, c := range g.cur.Cells() {
		if c.Y+g.cur.Pos.Y >= 0 {
			above = false
			break
		}
	}
	if above {
		g.GameOver()
		return
	}

	g.clearLines()
	g.holdUsed = false
	g.spawn(g.nextKind())
}

// clearLines removes full rows, scores them by the line table times the
// level and raises the level every LinesPerLevel lines. It returns the
// number of rows cleared.
func (g *Game) clearLines() int {
	rows := g.board.FullRows()
	if len(rows) == 0 {
		return 0
	}
	for _, y := range rows {
		for x := 0; x < g.board.W; x += 2 {
			sx, sy := g.screenPos(x, y)
			g.Burst(core.V(float64(sx)+1, float64(sy)), Kind(g.board.At(x, y)).Color(), 3, 6)
		}
	}
	n := g.board.ClearRows(rows)
	g.Score += lineScores[min(n, len(lineScores)-1)] * g.Level
	g.lines += n
	g.Emit(core.CueLineClear)

	per := core.Max(g.cfg.Timing.LinesPerLevel, 1)
	if lvl := 1 + g.lines/per; lvl > g.Level {
		g.Level = lvl
		g.Emit(core.CueLevelUp)
	}
	return n
}

// screenPos maps a board cell to its screen coordinates.
func (g *Game) screenPos(x, y int) (int, int) {
	return g.offX + 1 + x*cellW, g.offY + 1 + y
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst core.Surface) {
	if g.tooSmall {
		kit.DrawTooSmall(dst, g.minW, g.minH)
		return
	}

	frame := core.NewRect(float64(g.offX), float64(g.offY), float64(g.board.W*cellW+2), float64(g.board.H+2))
	dst.StrokeRect(frame, core.Solid('░', core.ColorGray))

	for y := range g.board.H {
		for x := range g.board.W {
			if v := g.board.At(x, y); v != 0 {
				g.drawCell(dst, x, y, core.Solid('█', Kind(v).Color()))
			}
		}
	}

	if !g.Phase().Is(core.PhaseGameOver) {
		ghost := g.cur
		ghost.Pos.Y += g.dropDistance()
		for _, c := range ghost.Cells() {
			p := c.Add(ghost.Pos)
			g.drawCell(dst, p.X, p.Y, core.Solid('░', g.cur.Kind.Color()).WithAlpha(0.5))
		}
		for _, c := range g.cur.Cells() {
			p := c.Add(g.cur.Pos)
			g.drawCell(dst, p.X, p.Y, core.Glowing('█', g.cur.Kind.Color()))
		}
	}

	g.renderPanel(dst)
	g.RenderOverlay(dst, "TETRIS")
}

func (g *Game) drawCell(dst core.Surface, x, y int, st core.Style) {
	if y < 0 {
		return
	}
	sx, sy := g.screenPos(x, y)
	dst.FillRect(core.NewRect(float64(sx), float64(sy), cellW, 1), st)
}

// renderPanel draws score, level, lines, the next queue and the held piece.
func (g *Game) renderPanel(dst core.Surface) {
	x := g.offX + g.board.W*cellW + 4
	y := g.offY + 1
	label := core.Solid(0, core.ColorGray)
	value := core.Solid(0, core.ColorWhite)

	dst.Text(x, y, "SCORE", label)
	dst.Text(x, y+1, fmt.Sprint(g.Score), value)
	dst.Text(x, y+3, fmt.Sprintf("LEVEL %d", g.Level), value)
	dst.Text(x, y+4, fmt.Sprintf("LINES %d", g.lines), value)

	dst.Text(x, y+6, "NEXT", label)
	for i := 0; i < previewCount && i < len(g.queue); i++ {
		k := g.queue[i]
		dst.Text(x+5+i*2, y+6, k.String(), core.Glowing(0, k.Color()))
	}
	g.drawMini(dst, x, y+7, g.queueHead())

	dst.Text(x, y+11, "HOLD", label)
	g.drawMini(dst, x, y+12, g.hold)
}

func (g *Game) queueHead() Kind {
	if len(g.queue) == 0 {
		return KindNone
	}
	return g.queue[0]
}

// drawMini draws a piece's spawn state at (x, y) in screen cells.
func (g *Game) drawMini(dst core.Surface, x, y int, k Kind) {
	if k == KindNone {
		return
	}
	st := core.Solid('█', k.Color())
	for _, c := range shapes[k][0] {
		dst.FillRect(core.NewRect(float64(x+c.X*cellW), float64(y+c.Y), cellW, 1), st)
	}
}

// Register the game with the registry
func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}
