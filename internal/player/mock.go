package player

import (
	"sync"
	"time"

	"github.com/Dave-01999178/cadence/internal/pcm"
)

// Mock is a test double for the engine. It never touches an audio
// device: Load succeeds (or fails with an injected error) and emits the
// same event sequence the real engine would. Safe for concurrent use,
// since consumers drive it from their own goroutines.
type Mock struct {
	mu sync.Mutex

	state       State
	position    time.Duration
	duration    time.Duration
	volumeLevel float64
	muted       bool

	loadErr   error
	loadCalls []*pcm.Buffer
	seekCalls []time.Duration

	events chan Event
	done   chan struct{}
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		state:       Stopped,
		volumeLevel: 1.0,
		events:      make(chan Event, eventBufferSize),
		done:        make(chan struct{}),
	}
}

func (m *Mock) Load(buf *pcm.Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, buf)
	if m.loadErr != nil {
		m.setStateLocked(Stopped)
		return m.loadErr
	}
	m.setStateLocked(Loading)
	m.emit(EventAudioLoaded{Duration: buf.Duration()})
	m.duration = buf.Duration()
	m.position = 0
	m.setStateLocked(Playing)
	m.emit(EventStarted{})
	return nil
}

func (m *Mock) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Loading {
		m.setStateLocked(Playing)
		m.emit(EventStarted{})
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Stopped {
		return
	}
	m.position = 0
	m.duration = 0
	m.setStateLocked(Stopped)
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.setStateLocked(Paused)
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.setStateLocked(Playing)
	}
}

func (m *Mock) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Playing:
		m.setStateLocked(Paused)
	case Paused:
		m.setStateLocked(Playing)
	case Stopped, Loading:
		// Nothing to toggle
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Seek(delta time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekToLocked(m.position + delta)
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekToLocked(pos)
}

func (m *Mock) seekToLocked(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	if !m.state.CanSeek() {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > m.duration {
		pos = m.duration
	}
	m.position = pos
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeLevel = level
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumeLevel
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	return nil
}

func (m *Mock) setStateLocked(s State) {
	if m.state == s {
		return
	}
	prev := m.state
	m.state = s
	m.emit(EventStatusChanged{Previous: prev, Current: s})
}

func (m *Mock) emit(e Event) {
	select {
	case m.events <- e:
	default:
	}
}

// Test helpers

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) LoadCalls() []*pcm.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*pcm.Buffer(nil), m.loadCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// SimulateFinished simulates the stream reaching the end of its buffer.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Stopped {
		return
	}
	m.position = 0
	m.duration = 0
	m.setStateLocked(Stopped)
	m.emit(EventFinished{})
}

// SimulatePosition emits a position event as the ticker would.
func (m *Mock) SimulatePosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
	m.emit(EventPositionChanged{Elapsed: pos})
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
