package playback

import "github.com/Dave-01999178/cadence/internal/player"

// State is the orchestrator's view of playback:
// Idle → Loading → Playing ⇄ Paused, back to Idle on stop, and Loading
// again when auto-advancing after a track finishes.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (anything but Idle).
func (s State) IsActive() bool {
	return s != StateIdle
}

// stateFromEngine maps an engine state onto the orchestrator's view.
func stateFromEngine(es player.State) State {
	switch es {
	case player.Loading:
		return StateLoading
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateIdle
	default:
		return StateIdle
	}
}
