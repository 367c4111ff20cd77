package player

// State represents the playback engine state machine.
//
// Valid transitions:
//   - Stopped → Loading (via Load, after the device opens)
//   - Loading → Playing (via the internal start issued by Load)
//   - Playing → Paused  (via Pause)
//   - Paused  → Playing (via Resume)
//   - Playing → Stopped (via Stop, or when the stream completes)
//   - Paused  → Stopped (via Stop)
//   - Loading → Stopped (via Stop)
//
// Invalid transitions are silent no-ops by design:
//   - Pause while not Playing
//   - Resume while not Paused
//   - Stop while Stopped (idempotent)
//   - Seek with no buffer loaded
type State int

const (
	Stopped State = iota
	Loading
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a buffer is bound (anything but Stopped).
func (s State) IsActive() bool {
	return s != Stopped
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}

// CanSeek returns true if the state allows seeking.
func (s State) CanSeek() bool {
	return s == Playing || s == Paused
}
