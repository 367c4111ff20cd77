package player

import "time"

// Event is emitted by the engine and drained by a single consumer
// (the playback service run loop). Emission is non-blocking: when the
// consumer falls behind, events are dropped rather than stalling the
// engine or the speaker goroutine.
type Event interface {
	playerEvent()
}

// EventAudioLoaded is emitted once a buffer is bound, before the first
// sample plays.
type EventAudioLoaded struct {
	Duration time.Duration
}

// EventStarted is emitted when streaming begins.
type EventStarted struct{}

// EventPositionChanged is emitted at a bounded rate while playing,
// never per audio callback.
type EventPositionChanged struct {
	Elapsed time.Duration
}

// EventFinished is emitted when the cursor reaches the end of the buffer.
type EventFinished struct{}

// EventStatusChanged is emitted on every state transition.
type EventStatusChanged struct {
	Previous State
	Current  State
}

func (EventAudioLoaded) playerEvent()     {}
func (EventStarted) playerEvent()         {}
func (EventPositionChanged) playerEvent() {}
func (EventFinished) playerEvent()        {}
func (EventStatusChanged) playerEvent()   {}
