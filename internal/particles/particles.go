// Package particles implements a pooled, layered particle engine.
//
// Particles are allocated lazily up to a fixed cap and recycled through a
// free list; once the cap is reached further Add calls are dropped
// silently. One Engine is created per session and bound to whichever game
// is active. The cap is shared by everything that spawns into the engine,
// so two games drawing from the same engine at once could starve each other.
package particles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Layer orders particle drawing relative to game content.
// The zero value is LayerGame.
type Layer int

const (
	LayerGame Layer = iota
	LayerBackground
	LayerForeground
	LayerUI
)

// drawOrder lists layers back to front.
var drawOrder = [...]Layer{LayerBackground, LayerGame, LayerForeground, LayerUI}

// DefaultCap is the pool size used when New is given a non-positive cap.
const DefaultCap = 1000

// DefaultSize is the particle size used when Config.Size is zero.
const DefaultSize = 2.0

// Config describes a particle to spawn. Life must be positive.
type Config struct {
	Pos     core.Vec
	Vel     core.Vec
	Color   core.Color
	Life    float64 // seconds
	Layer   Layer
	Size    float64
	Gravity float64 // cells per second squared, added to Vel.Y
	Glyph   rune
}

// Particle is a read-only view of a live particle.
type Particle struct {
	Pos     core.Vec
	Vel     core.Vec
	Color   core.Color
	Life    float64
	MaxLife float64
	Layer   Layer
	Size    float64
	Gravity float64
	Glyph   rune
}

// Alpha returns the remaining-life fraction in [0, 1].
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// Engine owns the particle pool.
type Engine struct {
	cap       int
	allocated int
	active    []*Particle
	free      []*Particle
	dropped   int
	rng       *rand.Rand
}

// New creates an engine with the given cap and RNG seed.
func New(capacity int, seed int64) *Engine {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Engine{
		cap:    capacity,
		active: make([]*Particle, 0, capacity),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Prewarm allocates the rest of the pool up front so no frame allocates.
// After Prewarm, Clear always leaves Pooled equal to Cap.
func (e *Engine) Prewarm() {
	block := make([]Particle, e.cap-e.allocated)
	for i := range block {
		e.free = append(e.free, &block[i])
	}
	e.allocated = e.cap
}

// Add spawns a particle. When the pool is exhausted the call is ignored.
func (e *Engine) Add(cfg Config) {
	var p *Particle
	switch {
	case len(e.free) > 0:
		p = e.free[len(e.free)-1]
		e.free = e.free[:len(e.free)-1]
	case e.allocated < e.cap:
		p = &Particle{}
		e.allocated++
	default:
		e.dropped++
		return
	}

	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}
	*p = Particle{
		Pos:     cfg.Pos,
		Vel:     cfg.Vel,
		Color:   cfg.Color,
		Life:    cfg.Life,
		MaxLife: cfg.Life,
		Layer:   cfg.Layer,
		Size:    size,
		Gravity: cfg.Gravity,
		Glyph:   cfg.Glyph,
	}
	e.active = append(e.active, p)
}

// Update advances every particle by dt seconds and recycles dead ones.
// A non-positive dt leaves the engine unchanged.
func (e *Engine) Update(dt float64) {
	if dt <= 0 {
		return
	}
	n := 0
	for _, p := range e.active {
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Vel.Y += p.Gravity * dt
		p.Life -= dt
		if p.Life <= 0 {
			e.free = append(e.free, p)
			continue
		}
		e.active[n] = p
		n++
	}
	clear(e.active[n:])
	e.active = e.active[:n]
}

// Draw renders all layers back to front.
func (e *Engine) Draw(s core.Surface) {
	for _, l := range drawOrder {
		e.DrawLayer(s, l)
	}
}

// DrawLayer renders the particles of one layer.
func (e *Engine) DrawLayer(s core.Surface, layer Layer) {
	for _, p := range e.active {
		if p.Layer != layer {
			continue
		}
		st := core.Style{Glyph: p.Glyph, Color: p.Color, Alpha: p.Alpha()}
		if st.Glyph == 0 {
			st.Glyph = glyphFor(p.Alpha())
		}
		if p.Size > DefaultSize {
			s.FillCircle(p.Pos.X, p.Pos.Y, p.Size/4, st)
			continue
		}
		s.FillRect(core.NewRect(p.Pos.X, p.Pos.Y, 1, 1), st)
	}
}

func glyphFor(alpha float64) rune {
	switch {
	case alpha > 0.66:
		return '*'
	case alpha > 0.33:
		return '+'
	default:
		return '.'
	}
}

// Each calls fn with a copy of every live particle.
func (e *Engine) Each(fn func(Particle)) {
	for _, p := range e.active {
		fn(*p)
	}
}

// Clear returns every live particle to the pool.
func (e *Engine) Clear() {
	e.free = append(e.free, e.active...)
	clear(e.active)
	e.active = e.active[:0]
}

// Active returns the number of live particles.
func (e *Engine) Active() int { return len(e.active) }

// Pooled returns the number of allocated particles waiting for reuse.
func (e *Engine) Pooled() int { return len(e.free) }

// Allocated returns how many particles have ever been allocated.
func (e *Engine) Allocated() int { return e.allocated }

// Cap returns the pool cap.
func (e *Engine) Cap() int { return e.cap }

// Dropped returns how many Add calls were ignored at the cap.
func (e *Engine) Dropped() int { return e.dropped }

// CreateExplosion spawns count particles flying outward in random
// directions with a little gravity.
func (e *Engine) CreateExplosion(pos core.Vec, color core.Color, count int) {
	for range count {
		ang := e.rng.Float64() * 2 * math.Pi
		spd := 6 + e.rng.Float64()*14
		e.Add(Config{
			Pos:     pos,
			Vel:     core.V(math.Cos(ang)*spd, math.Sin(ang)*spd*0.5),
			Color:   e.jitter(color, 30),
			Life:    0.4 + e.rng.Float64()*0.6,
			Layer:   LayerForeground,
			Gravity: 12,
		})
	}
}

// CreateBurst spawns count particles evenly spaced around a ring at the
// given speed.
func (e *Engine) CreateBurst(pos core.Vec, color core.Color, count int, speed float64) {
	if count <= 0 {
		return
	}
	offset := e.rng.Float64() * 2 * math.Pi
	for i := range count {
		ang := offset + float64(i)*2*math.Pi/float64(count)
		e.Add(Config{
			Pos:   pos,
			Vel:   core.V(math.Cos(ang)*speed, math.Sin(ang)*speed*0.5),
			Color: e.jitter(color, 15),
			Life:  0.3 + e.rng.Float64()*0.3,
			Layer: LayerGame,
			Size:  1,
		})
	}
}

// CreateTrail spawns a single short-lived particle drifting against vel.
func (e *Engine) CreateTrail(pos, vel core.Vec, color core.Color) {
	back := vel.Scale(-0.15)
	e.Add(Config{
		Pos:   pos,
		Vel:   core.V(back.X+(e.rng.Float64()-0.5), back.Y+(e.rng.Float64()-0.5)),
		Color: color.Scale(0.7),
		Life:  0.15 + e.rng.Float64()*0.15,
		Layer: LayerBackground,
		Size:  1,
		Glyph: '.',
	})
}

func (e *Engine) jitter(c core.Color, amount int) core.Color {
	ch := func(v uint8) uint8 {
		d := e.rng.Intn(2*amount+1) - amount
		return uint8(core.Clamp(int(v)+d, 0, 255))
	}
	return core.RGB(ch(c.R), ch(c.G), ch(c.B))
}
