package playback

import (
	"sync"
	"time"

	"github.com/Dave-01999178/cadence/internal/pcm"
	"github.com/Dave-01999178/cadence/internal/player"
	"github.com/Dave-01999178/cadence/internal/playlist"
	"github.com/Dave-01999178/cadence/internal/tags"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// pendingTrack is the track handed to the engine whose load has not yet
// been confirmed. It commits to current when EventAudioLoaded arrives.
// seq ties it to the Play call that created it: a newer Play supersedes
// an older one still decoding, and only the pending entry whose load
// actually reached the engine may commit.
type pendingTrack struct {
	track Track
	index int
	seq   uint64
}

type serviceImpl struct {
	mu sync.RWMutex

	engine   player.Interface
	list     *playlist.Playlist
	loader   Loader
	defaults tags.Defaults
	skipBad  bool

	pending      *pendingTrack
	current      *Track
	currentIndex int

	// loadMu serializes engine loads; playSeq numbers Play calls and
	// loadedSeq records the one whose buffer the engine holds.
	loadMu    sync.Mutex
	playSeq   uint64
	loadedSeq uint64

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service and starts its event loop, which drains
// the engine's events and republishes them to subscribers.
func New(engine player.Interface, list *playlist.Playlist, opts Options) Service {
	loader := opts.Loader
	if loader == nil {
		loader = pcm.Decode
	}
	defaults := opts.MetadataDefaults
	if defaults == (tags.Defaults{}) {
		defaults = tags.DefaultStrings()
	}

	s := &serviceImpl{
		engine:       engine,
		list:         list,
		loader:       loader,
		defaults:     defaults,
		skipBad:      opts.SkipOnDecodeError,
		currentIndex: -1,
		done:         make(chan struct{}),
	}
	go s.run()
	return s
}

// run drains engine events. Events arrive on this goroutine regardless
// of which thread issued the command; subscribers drain their own
// channels on their own schedule.
func (s *serviceImpl) run() {
	for {
		select {
		case e, ok := <-s.engine.Events():
			if !ok {
				return
			}
			s.handleEngineEvent(e)
		case <-s.done:
			return
		}
	}
}

func (s *serviceImpl) handleEngineEvent(e player.Event) {
	switch e := e.(type) {
	case player.EventStatusChanged:
		prev, cur := stateFromEngine(e.Previous), stateFromEngine(e.Current)
		if prev != cur {
			s.publishState(StateChange{Previous: prev, Current: cur})
		}

	case player.EventAudioLoaded:
		s.commitPending()

	case player.EventStarted:
		// Covered by the status change events.

	case player.EventPositionChanged:
		remaining := s.engine.Duration() - e.Elapsed
		if remaining < 0 {
			remaining = 0
		}
		s.publishPosition(PositionChange{Position: e.Elapsed, Remaining: remaining})

	case player.EventFinished:
		s.handleTrackFinished()
	}
}

// commitPending promotes the pending track to current once the engine
// confirms its buffer is bound. A pending entry from a Play call whose
// load never reached the engine stays uncommitted.
func (s *serviceImpl) commitPending() {
	s.mu.Lock()
	if s.pending == nil || s.pending.seq != s.loadedSeq {
		s.mu.Unlock()
		return
	}
	prev, prevIndex := s.current, s.currentIndex
	committed := s.pending.track
	s.current = &committed
	s.currentIndex = s.pending.index
	s.pending = nil
	index := s.currentIndex
	s.mu.Unlock()

	s.publishTrack(TrackChange{
		Previous:      prev,
		Current:       &committed,
		PreviousIndex: prevIndexOr(prev, prevIndex),
		Index:         index,
	})
}

func prevIndexOr(prev *Track, idx int) int {
	if prev == nil {
		return -1
	}
	return idx
}

// handleTrackFinished auto-advances to the next track on natural end of
// stream. At the end of the playlist it stays Idle with the selection
// unchanged.
func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	s.current = nil
	s.currentIndex = -1
	moved := s.list.Next()
	index := s.list.SelectedIndex()
	s.mu.Unlock()

	if !moved {
		return
	}
	s.publishSelection(SelectionChange{Index: index})
	if err := s.Play(); err != nil {
		// Already published as an ErrorEvent by Play.
		return
	}
}

// Play resolves the selected track, decodes it and hands the buffer to
// the engine. On decode failure the playback state is left untouched
// unless skip-on-decode-error is enabled.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	if s.list.IsEmpty() {
		s.mu.Unlock()
		return ErrEmptyPlaylist
	}
	selected := s.list.Selected()
	if selected == nil {
		s.mu.Unlock()
		return ErrNoTrackSelected
	}
	track := *selected
	index := s.list.SelectedIndex()
	s.playSeq++
	seq := s.playSeq
	s.pending = &pendingTrack{track: trackFrom(track), index: index, seq: seq}
	s.mu.Unlock()

	// Decode outside the lock: it reads and decompresses the whole file.
	buf, err := s.loader(track.Path)
	if err != nil {
		s.clearPending(seq)
		s.publishError(ErrorEvent{Operation: "play", Path: track.Path, Err: err})
		if s.skipBad {
			if moved, index := s.advance(); moved {
				s.publishSelection(SelectionChange{Index: index})
				return s.Play()
			}
		}
		return err
	}

	// Loads run one at a time, in the order their Play calls passed
	// the supersede check below.
	s.loadMu.Lock()
	s.mu.Lock()
	if s.pending == nil || s.pending.seq != seq {
		// A newer Play took over while this track was decoding.
		s.mu.Unlock()
		s.loadMu.Unlock()
		return nil
	}
	s.loadedSeq = seq
	s.mu.Unlock()

	err = s.engine.Load(buf)
	s.loadMu.Unlock()
	if err != nil {
		s.clearPending(seq)
		s.publishError(ErrorEvent{Operation: "play", Path: track.Path, Err: err})
		return err
	}
	return nil
}

// PlayIndex selects the given index and plays it.
func (s *serviceImpl) PlayIndex(index int) error {
	s.mu.Lock()
	ok := s.list.Select(index)
	s.mu.Unlock()
	if !ok {
		return ErrNoTrackSelected
	}
	s.publishSelection(SelectionChange{Index: index})
	return s.Play()
}

// Pause pauses playback. No-op unless playing.
func (s *serviceImpl) Pause() error {
	s.engine.Pause()
	return nil
}

// Resume resumes paused playback. No-op unless paused.
func (s *serviceImpl) Resume() error {
	s.engine.Resume()
	return nil
}

// Stop halts playback and returns to Idle. Idempotent.
func (s *serviceImpl) Stop() error {
	s.engine.Stop()
	s.mu.Lock()
	s.pending = nil
	s.current = nil
	s.currentIndex = -1
	s.mu.Unlock()
	return nil
}

// Toggle is the single public play/pause command: resume if paused,
// pause if playing, otherwise play the selected track.
func (s *serviceImpl) Toggle() error {
	switch s.engine.State() {
	case player.Playing:
		return s.Pause()
	case player.Paused:
		return s.Resume()
	default:
		return s.Play()
	}
}

// Next advances the selection and plays it. Advancing past the last
// track is a no-op.
func (s *serviceImpl) Next() error {
	moved, index := s.advance()
	if !moved {
		return nil
	}
	s.publishSelection(SelectionChange{Index: index})
	return s.Play()
}

// Previous retreats the selection and plays it. Retreating past the
// first track is a no-op.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	moved := s.list.Previous()
	index := s.list.SelectedIndex()
	s.mu.Unlock()
	if !moved {
		return nil
	}
	s.publishSelection(SelectionChange{Index: index})
	return s.Play()
}

func (s *serviceImpl) advance() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.list.Next()
	return moved, s.list.SelectedIndex()
}

// clearPending drops the pending entry created by the Play call with
// the given sequence number, leaving a newer caller's entry alone.
func (s *serviceImpl) clearPending(seq uint64) {
	s.mu.Lock()
	if s.pending != nil && s.pending.seq == seq {
		s.pending = nil
	}
	s.mu.Unlock()
}

// Seek moves the cursor by a relative delta.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.engine.Seek(delta)
	return nil
}

// SeekTo moves the cursor to an absolute position.
func (s *serviceImpl) SeekTo(pos time.Duration) error {
	s.engine.SeekTo(pos)
	return nil
}

// AddFiles extracts metadata for each supported file and appends the
// results to the playlist. Unsupported extensions are skipped silently;
// unreadable files publish an ErrorEvent and set the returned error.
// If nothing was selected, the first track becomes selected.
func (s *serviceImpl) AddFiles(paths ...string) (int, error) {
	var tracks []playlist.Track
	var firstErr error
	for _, path := range paths {
		if !tags.IsMusicFile(path) {
			continue
		}
		t, err := tags.Extract(path, s.defaults)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.publishError(ErrorEvent{Operation: "add tracks", Path: path, Err: err})
			continue
		}
		tracks = append(tracks, playlist.Track{
			Path:     t.Path,
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Duration: t.Duration,
		})
	}

	added := s.AddTracks(tracks...)
	return added, firstErr
}

// AddTracks appends tracks directly, deduplicated by resolved path, and
// publishes TracksAdded. Returns the number actually inserted.
func (s *serviceImpl) AddTracks(tracks ...playlist.Track) int {
	s.mu.Lock()
	added := s.list.Add(tracks...)
	total := s.list.Len()
	selected := -1
	if s.list.SelectedIndex() == -1 && total > 0 {
		s.list.Select(0)
		selected = 0
	}
	s.mu.Unlock()

	s.publishTracksAdded(TracksAdded{Added: added, Total: total})
	if selected >= 0 {
		s.publishSelection(SelectionChange{Index: selected})
	}
	return added
}

// Remove removes the track at the given index.
func (s *serviceImpl) Remove(index int) bool {
	s.mu.Lock()
	ok := s.list.Remove(index)
	total := s.list.Len()
	selection := s.list.SelectedIndex()
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.publishTracksAdded(TracksAdded{Added: 0, Total: total})
	s.publishSelection(SelectionChange{Index: selection})
	return true
}

// ClearPlaylist stops playback and removes all tracks.
func (s *serviceImpl) ClearPlaylist() {
	_ = s.Stop()
	s.mu.Lock()
	s.list.Clear()
	s.mu.Unlock()
	s.publishTracksAdded(TracksAdded{Added: 0, Total: 0})
	s.publishSelection(SelectionChange{Index: -1})
}

// Select moves the selection without starting playback.
func (s *serviceImpl) Select(index int) bool {
	s.mu.Lock()
	ok := s.list.Select(index)
	s.mu.Unlock()
	if ok {
		s.publishSelection(SelectionChange{Index: index})
	}
	return ok
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	return stateFromEngine(s.engine.State())
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsPaused() bool { return s.State() == StatePaused }

func (s *serviceImpl) IsIdle() bool { return s.State() == StateIdle }

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	return s.engine.Position()
}

// Duration returns the duration of the loaded track.
func (s *serviceImpl) Duration() time.Duration {
	return s.engine.Duration()
}

// CurrentTrack returns a copy of the committed current track, or nil.
func (s *serviceImpl) CurrentTrack() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	track := *s.current
	return &track
}

// Tracks returns a copy of the playlist contents.
func (s *serviceImpl) Tracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.list.Tracks()
	result := make([]Track, len(src))
	for i, t := range src {
		result[i] = trackFrom(t)
	}
	return result
}

// SelectedIndex returns the playlist selection index (-1 if none).
func (s *serviceImpl) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.SelectedIndex()
}

// Len returns the number of playlist tracks.
func (s *serviceImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.Len()
}

// IsEmpty reports whether the playlist is empty.
func (s *serviceImpl) IsEmpty() bool {
	return s.Len() == 0
}

// HasNext reports whether a track exists after the selection.
func (s *serviceImpl) HasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.HasNext()
}

// SetVolume forwards to the engine.
func (s *serviceImpl) SetVolume(level float64) { s.engine.SetVolume(level) }

// Volume forwards to the engine.
func (s *serviceImpl) Volume() float64 { return s.engine.Volume() }

// SetMuted forwards to the engine.
func (s *serviceImpl) SetMuted(muted bool) { s.engine.SetMuted(muted) }

// Muted forwards to the engine.
func (s *serviceImpl) Muted() bool { return s.engine.Muted() }

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the event loop and signals all subscribers.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// Publish helpers fan an event out to every subscription.

func (s *serviceImpl) publishState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *serviceImpl) publishTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *serviceImpl) publishPosition(e PositionChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(e)
	}
}

func (s *serviceImpl) publishSelection(e SelectionChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendSelection(e)
	}
}

func (s *serviceImpl) publishTracksAdded(e TracksAdded) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTracksAdded(e)
	}
}

func (s *serviceImpl) publishError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
