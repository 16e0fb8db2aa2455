//go:build !speaker

package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
)

var errNoDevice = errors.New("audio: built without the speaker tag")

// deviceMu stands in for the speaker lock so mixer access stays serialized.
var deviceMu sync.Mutex

func openDevice() error { return errNoDevice }

func startDevice(beep.Streamer) {}

func lockDevice() { deviceMu.Lock() }
func unlockDevice() { deviceMu.Unlock() }
