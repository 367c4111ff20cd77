package playback

import "time"

// StateChange is published when the playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is published when a pending track commits to current,
// which happens when the engine reports the buffer bound. Navigation
// without a successful load never publishes a TrackChange.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// PositionChange is published at a bounded rate while playing and after
// every seek.
type PositionChange struct {
	Position  time.Duration
	Remaining time.Duration
}

// SelectionChange is published when the playlist selection moves.
type SelectionChange struct {
	Index int
}

// TracksAdded is published after an add operation, with the number of
// tracks actually inserted and the new playlist total.
type TracksAdded struct {
	Added int
	Total int
}

// ErrorEvent is published when an operation fails asynchronously or in a
// way worth surfacing to the UI.
type ErrorEvent struct {
	Operation string // e.g. "play", "add tracks"
	Path      string // track path if applicable
	Err       error
}
