package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// SampleRate is the output rate of every synthesized cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// note is one segment of a cue: a frequency sweep from Freq to To.
type note struct {
	Freq float64
	To   float64 // 0 keeps Freq
	Dur  time.Duration
	Wave Wave
}

// cueNotes describes the chiptune for each cue.
var cueNotes = map[core.Cue][]note{
	core.CueBounce:    {{Freq: 660, Dur: 30 * time.Millisecond, Wave: WaveSquare}},
	core.CueHit:       {{Freq: 440, To: 330, Dur: 60 * time.Millisecond, Wave: WaveSquare}},
	core.CueScore:     {{Freq: 988, Dur: 60 * time.Millisecond, Wave: WaveSquare}, {Freq: 1319, Dur: 120 * time.Millisecond, Wave: WaveSquare}},
	core.CueEat:       {{Freq: 523, To: 784, Dur: 50 * time.Millisecond, Wave: WaveTriangle}},
	core.CuePowerUp:   {{Freq: 392, To: 1568, Dur: 250 * time.Millisecond, Wave: WaveTriangle}},
	core.CueExplosion: {{Dur: 220 * time.Millisecond, Wave: WaveNoise}},
	core.CueLifeLost:  {{Freq: 494, To: 110, Dur: 400 * time.Millisecond, Wave: WaveSquare}},
	core.CueLevelUp: {
		{Freq: 523, Dur: 80 * time.Millisecond, Wave: WaveSquare},
		{Freq: 659, Dur: 80 * time.Millisecond, Wave: WaveSquare},
		{Freq: 784, Dur: 80 * time.Millisecond, Wave: WaveSquare},
		{Freq: 1047, Dur: 160 * time.Millisecond, Wave: WaveSquare},
	},
	core.CueLineClear: {{Freq: 880, To: 1760, Dur: 120 * time.Millisecond, Wave: WaveSine}, {Dur: 60 * time.Millisecond, Wave: WaveNoise}},
	core.CueShoot:     {{Freq: 1200, To: 300, Dur: 70 * time.Millisecond, Wave: WaveSquare}},
	core.CueGameOver: {
		{Freq: 392, Dur: 200 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 330, Dur: 200 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 262, Dur: 400 * time.Millisecond, Wave: WaveTriangle},
	},
}

// CueDuration returns the total length of a cue, or 0 for cues without a sound.
func CueDuration(c core.Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.Dur
	}
	return d
}

// Tone builds the streamer for a cue at the given volume (0..1).
// It returns nil for cues without a sound.
func Tone(c core.Cue, volume float64) beep.Streamer {
	notes := cueNotes[c]
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for i, n := range notes {
		osc := newOscillator(n, SampleRate, uint64(c)<<8|uint64(i))
		parts = append(parts, newEnvelope(osc, SampleRate.N(n.Dur), SampleRate.N(4*time.Millisecond), SampleRate.N(n.Dur/3)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// withVolume scales s linearly; zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if !(vol > 0) {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

type oscillator struct {
	note  note
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
	noise *rand.Rand
}

func newOscillator(n note, rate beep.SampleRate, seed uint64) *oscillator {
	return &oscillator{
		note:  n,
		rate:  rate,
		total: rate.N(n.Dur),
		noise: rand.New(rand.NewPCG(seed, 0x5eed)),
	}
}

func (o *oscillator) freq() float64 {
	if o.note.To == 0 || o.total == 0 {
		return o.note.Freq
	}
	t := float64(o.pos) / float64(o.total)
	return core.Lerp(o.note.Freq, o.note.To, t)
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.note.Wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		// Square waves are harsh at full scale.
		if o.note.Wave == WaveSquare {
			v *= 0.5
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	return &envelope{s: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.attack > 0 && e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			g = min(g, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }
