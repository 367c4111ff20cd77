package playback

import (
	"errors"
	"time"

	"github.com/Dave-01999178/cadence/internal/pcm"
	"github.com/Dave-01999178/cadence/internal/playlist"
	"github.com/Dave-01999178/cadence/internal/tags"
)

var (
	// ErrEmptyPlaylist is returned by Play when there are no tracks.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrNoTrackSelected is returned by Play when nothing is selected.
	ErrNoTrackSelected = errors.New("no track selected")
)

// Loader decodes a file into a PCM buffer. The default is pcm.Decode;
// tests inject their own.
type Loader func(path string) (*pcm.Buffer, error)

// Options configures a playback service.
type Options struct {
	// Loader decodes tracks; nil means pcm.Decode.
	Loader Loader
	// MetadataDefaults are the fallback strings for missing tags;
	// the zero value means tags.DefaultStrings().
	MetadataDefaults tags.Defaults
	// SkipOnDecodeError makes the service try the next track after a
	// decode failure instead of staying put.
	SkipOnDecodeError bool
}

// Service sequences playlist tracks through the playback engine and
// publishes application-level events to subscribers.
type Service interface {
	// Playback control
	Play() error
	PlayIndex(index int) error
	Pause() error
	Resume() error
	Stop() error
	Toggle() error
	Next() error
	Previous() error
	Seek(delta time.Duration) error
	SeekTo(pos time.Duration) error

	// Playlist manipulation
	AddFiles(paths ...string) (added int, err error)
	AddTracks(tracks ...playlist.Track) int
	Remove(index int) bool
	ClearPlaylist()
	Select(index int) bool

	// State queries
	State() State
	IsPlaying() bool
	IsPaused() bool
	IsIdle() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *Track

	// Playlist queries
	Tracks() []Track
	SelectedIndex() int
	Len() int
	IsEmpty() bool
	HasNext() bool

	// Volume control
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
