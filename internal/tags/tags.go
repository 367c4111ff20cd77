// Package tags extracts display metadata from music files, falling back
// to configured defaults when tags are absent or unreadable.
package tags

import (
	"path/filepath"
	"strings"
	"time"
)

// File extensions supported by the metadata reader.
const (
	ExtMP3  = ".mp3"
	ExtWAV  = ".wav"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
)

// Tag contains the metadata shown for a track.
type Tag struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Defaults are the strings used when a tag is missing.
type Defaults struct {
	Title  string
	Artist string
	Album  string
}

// DefaultStrings returns the stock fallback strings.
func DefaultStrings() Defaults {
	return Defaults{
		Title:  "Unknown Title",
		Artist: "Unknown Artist",
		Album:  "Unknown Album",
	}
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, WAV, FLAC, OGG
	SampleRate int
}

// IsMusicFile returns true if the path has a supported music extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtWAV, ExtFLAC, ExtOGG:
		return true
	}
	return false
}
