// Package playlist holds the ordered track collection and its selection.
package playlist

import (
	"path/filepath"
	"time"
)

// Track represents a single track. It is an immutable value; identity is
// the resolved absolute path.
type Track struct {
	Path     string // resolved absolute path
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// ResolvePath normalizes a path to its absolute, cleaned form. Falls back
// to a cleaned relative path when the working directory is unavailable.
func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Playlist is an ordered collection of tracks with a single selection.
// Insertion order is preserved and duplicate resolved paths are rejected.
type Playlist struct {
	tracks   []Track
	paths    map[string]struct{}
	selected int // -1 if nothing selected
}

// New creates an empty playlist with no selection.
func New() *Playlist {
	return &Playlist{
		tracks:   make([]Track, 0),
		paths:    make(map[string]struct{}),
		selected: -1,
	}
}

// Add appends tracks, skipping any whose resolved path is already
// present, and returns the number actually inserted. Paths are resolved
// on insertion, so later membership tests are by identity.
func (p *Playlist) Add(tracks ...Track) int {
	added := 0
	for _, t := range tracks {
		t.Path = ResolvePath(t.Path)
		if _, ok := p.paths[t.Path]; ok {
			continue
		}
		p.paths[t.Path] = struct{}{}
		p.tracks = append(p.tracks, t)
		added++
	}
	return added
}

// Contains reports whether a track with the same resolved path exists.
func (p *Playlist) Contains(path string) bool {
	_, ok := p.paths[ResolvePath(path)]
	return ok
}

// Remove removes the track at the given index, adjusting the selection.
// Returns false if the index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	delete(p.paths, p.tracks[index].Path)
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)

	switch {
	case p.selected > index:
		p.selected--
	case p.selected == index:
		// Selection stays at the same index (now the next track),
		// clamped to the new end; -1 once the playlist is empty.
		if p.selected >= len(p.tracks) {
			p.selected = len(p.tracks) - 1
		}
	}
	return true
}

// Clear removes all tracks and resets the selection.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
	p.paths = make(map[string]struct{})
	p.selected = -1
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// SelectedIndex returns the selection index (-1 if none).
func (p *Playlist) SelectedIndex() int {
	return p.selected
}

// Selected returns the selected track, or nil if none.
func (p *Playlist) Selected() *Track {
	return p.Track(p.selected)
}

// Select sets the selection to the given index. Returns false (and
// leaves the selection unchanged) if the index is invalid.
func (p *Playlist) Select(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.selected = index
	return true
}

// Next advances the selection. Returns false if there is no next track;
// the selection is never moved past the last valid index.
func (p *Playlist) Next() bool {
	if p.selected >= len(p.tracks)-1 {
		return false
	}
	p.selected++
	return true
}

// Previous retreats the selection. Returns false if already at the first
// track or nothing is selected.
func (p *Playlist) Previous() bool {
	if p.selected <= 0 {
		return false
	}
	p.selected--
	return true
}

// HasNext reports whether a track exists after the selection.
func (p *Playlist) HasNext() bool {
	return p.selected < len(p.tracks)-1
}

// IsEmpty reports whether the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}
