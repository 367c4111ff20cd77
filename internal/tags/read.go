package tags

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Extract reads tag metadata from a music file. Missing or unreadable
// tags fall back to the given defaults; only an unreadable file or an
// unsupported extension is an error. Duration comes from the audio
// stream headers and is 0 when it cannot be determined.
func Extract(path string, d Defaults) (*Tag, error) {
	if !IsMusicFile(path) {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	t := &Tag{
		Path:   path,
		Title:  d.Title,
		Artist: d.Artist,
		Album:  d.Album,
	}

	// A failed tag parse is not fatal: WAV files rarely carry tags at
	// all, and corrupt tag blocks should not block playback.
	if m, err := tag.ReadFrom(f); err == nil {
		if v := m.Title(); v != "" {
			t.Title = v
		}
		if v := m.Artist(); v != "" {
			t.Artist = v
		}
		if v := m.Album(); v != "" {
			t.Album = v
		}
	}
	f.Close()

	if audio, err := ReadAudioInfo(path); err == nil {
		t.Duration = audio.Duration
	}

	return t, nil
}
