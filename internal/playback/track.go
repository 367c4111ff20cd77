package playback

import (
	"time"

	"github.com/Dave-01999178/cadence/internal/playlist"
)

// Track represents a track as seen by subscribers. It is a copy of the
// data, not a reference into the playlist.
type Track struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

func trackFrom(t playlist.Track) Track {
	return Track{
		Path:     t.Path,
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: t.Duration,
	}
}
