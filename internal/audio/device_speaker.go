//go:build speaker

package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

var (
	deviceOnce sync.Once
	deviceErr  error
)

// openDevice initialises the speaker once per process.
func openDevice() error {
	deviceOnce.Do(func() {
		deviceErr = speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond))
	})
	return deviceErr
}

func startDevice(s beep.Streamer) { speaker.Play(s) }

func lockDevice() { speaker.Lock() }
func unlockDevice() { speaker.Unlock() }
