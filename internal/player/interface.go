package player

import (
	"time"

	"github.com/Dave-01999178/cadence/internal/pcm"
)

// Interface defines the engine contract for dependency injection and
// testing.
type Interface interface {
	Load(buf *pcm.Buffer) error
	Start()
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration)
	SeekTo(pos time.Duration)
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	Events() <-chan Event
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
