// Package audio turns game sound cues into short synthesized tones.
//
// Output to the sound device needs the speaker build tag
// (go build -tags speaker), which links the cgo audio backend. Default
// builds stay CGO-free and New returns Nop.
package audio

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Player plays sound cues. Implementations must be safe for concurrent use.
type Player interface {
	Play(c core.Cue)
	SetVolume(v float64)
	SetEnabled(on bool)
	Close()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(core.Cue)     {}
func (Nop) SetVolume(float64) {}
func (Nop) SetEnabled(bool)   {}
func (Nop) Close()            {}

// maxVoices caps overlapping cues; extra cues are dropped.
const maxVoices = 8

// Speaker plays cues on the local sound device through a shared mixer.
type Speaker struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	closed  bool
}

// New opens the local speaker. When the device cannot be opened (headless
// hosts, containers, builds without the speaker tag) it logs a warning and
// returns Nop.
func New(enabled bool, volume float64, logger *log.Logger) Player {
	if logger == nil {
		logger = log.Default()
	}
	if err := openDevice(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return Nop{}
	}
	s := newSpeaker(enabled, volume)
	startDevice(s.mixer)
	logger.Debug("audio ready", "rate", int(SampleRate), "volume", s.volume)
	return s
}

func newSpeaker(enabled bool, volume float64) *Speaker {
	return &Speaker{
		mixer:   &beep.Mixer{},
		volume:  clampVolume(volume),
		enabled: enabled,
	}
}

// Play mixes the cue's tone into the output.
func (s *Speaker) Play(c core.Cue) {
	s.mu.Lock()
	if s.closed || !s.enabled || s.volume == 0 {
		s.mu.Unlock()
		return
	}
	tone := Tone(c, s.volume)
	s.mu.Unlock()
	if tone == nil {
		return
	}

	lockDevice()
	if s.mixer.Len() < maxVoices {
		s.mixer.Add(tone)
	}
	unlockDevice()
}

func (s *Speaker) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = clampVolume(v)
	s.mu.Unlock()
}

func (s *Speaker) SetEnabled(on bool) {
	s.mu.Lock()
	s.enabled = on
	s.mu.Unlock()
}

// Close silences the player. The device stays open for the process.
func (s *Speaker) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	lockDevice()
	s.mixer.Clear()
	unlockDevice()
}

// clampVolume limits v to [0, 1]; NaN is muted.
func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return core.ClampF(v, 0, 1)
}
