// Package player implements the playback engine: it owns the audio output
// stream and the PCM buffer bound to it, and exposes a command surface that
// is safe to call from any goroutine while the speaker goroutine is
// actively pulling samples.
package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/Dave-01999178/cadence/internal/pcm"
)

// ErrDeviceUnavailable is wrapped by Load when the audio output device
// cannot be opened. The engine stays Stopped and Load may be retried.
var ErrDeviceUnavailable = errors.New("audio output device unavailable")

const (
	eventBufferSize         = 32
	defaultPositionInterval = 500 * time.Millisecond
	defaultSpeakerBuffer    = 100 * time.Millisecond
	resampleQuality         = 4
)

// The speaker is initialized once, at the sample rate of the first track.
// Later tracks with a different rate are resampled onto it. speakerMu
// guards the init state; a failed init leaves it clear so Load can retry.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is the playback engine. All exported methods are safe for
// concurrent use; the speaker goroutine never takes the player mutex.
type Player struct {
	mu sync.Mutex

	state    State
	buffer   *pcm.Buffer
	streamer beep.StreamSeeker
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	volumeLevel float64
	muted       bool

	posInterval   time.Duration
	speakerBuffer time.Duration

	events     chan Event
	finishedCh chan struct{} // signalled by the speaker callback, capacity 1
	stopPos    chan struct{} // closes to stop the position loop
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a stopped playback engine and starts its internal
// completion-handling goroutine.
func New() *Player {
	p := &Player{
		state:         Stopped,
		volumeLevel:   1.0,
		posInterval:   defaultPositionInterval,
		speakerBuffer: defaultSpeakerBuffer,
		events:        make(chan Event, eventBufferSize),
		finishedCh:    make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
	go p.run()
	return p
}

// SetPositionInterval sets the rate at which position events are emitted.
// Call before Load; values <= 0 are ignored.
func (p *Player) SetPositionInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.posInterval = d
	p.mu.Unlock()
}

// SetSpeakerBuffer sets the output buffer length used when the device is
// first opened. Call before the first Load; values <= 0 are ignored.
func (p *Player) SetSpeakerBuffer(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.speakerBuffer = d
	p.mu.Unlock()
}

// Events returns the engine event channel. A single consumer should
// drain it; see Event for the delivery contract.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Load tears down any current stream, binds the given buffer at frame 0
// and starts playing it. On device failure the engine stays Stopped and
// no buffer is retained.
func (p *Player) Load(buf *pcm.Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.teardownLocked()
	p.setStateLocked(Stopped)

	format := buf.Format()
	deviceRate, err := initSpeaker(format.SampleRate, p.speakerBuffer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	p.buffer = buf
	p.streamer = buf.Streamer()

	// Resample if the track's sample rate differs from the speaker's
	var out beep.Streamer = p.streamer
	if format.SampleRate != deviceRate {
		out = beep.Resample(resampleQuality, format.SampleRate, deviceRate, p.streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: false}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}

	p.setStateLocked(Loading)
	p.emit(EventAudioLoaded{Duration: buf.Duration()})

	p.startLocked()
	return nil
}

// Start begins streaming from frame 0. Only meaningful in Loading with a
// bound buffer; Load already issues it internally, so this is a no-op in
// every other state, including while already Playing.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Loading || p.volume == nil {
		return
	}
	p.startLocked()
}

// startLocked hands the streamer chain to the speaker and transitions to
// Playing. Caller holds p.mu.
func (p *Player) startLocked() {
	// Drain any stale finish signal from a previous stream.
	select {
	case <-p.finishedCh:
	default:
	}

	// The callback runs on the speaker goroutine when the stream drains.
	// It must not block or take p.mu: a non-blocking send is all it does.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
	})))

	p.setStateLocked(Playing)
	p.emit(EventStarted{})
	p.startPositionLoopLocked()
}

// run handles completion signals from the speaker callback on a normal
// goroutine, where taking the player mutex is allowed.
func (p *Player) run() {
	for {
		select {
		case <-p.finishedCh:
			p.finish()
		case <-p.done:
			return
		}
	}
}

// finish transitions to Stopped after the stream completed naturally.
func (p *Player) finish() {
	p.mu.Lock()
	if p.state != Playing && p.state != Paused {
		p.mu.Unlock()
		return
	}
	p.teardownLocked()
	p.setStateLocked(Stopped)
	p.mu.Unlock()

	p.emit(EventFinished{})
}

// teardownLocked halts the stream and releases the buffer and cursor.
// Caller holds p.mu. The speaker is cleared before the buffer reference
// is dropped, so the callback can never read a released buffer.
func (p *Player) teardownLocked() {
	if p.stopPos != nil {
		close(p.stopPos)
		p.stopPos = nil
	}
	if p.ctrl != nil || p.streamer != nil {
		speaker.Clear()
	}
	p.streamer = nil
	p.buffer = nil
	p.ctrl = nil
	p.volume = nil

	// A callback may have fired just before Clear; its signal is stale now.
	select {
	case <-p.finishedCh:
	default:
	}
}

// setStateLocked transitions the state and emits a status event.
// Caller holds p.mu.
func (p *Player) setStateLocked(s State) {
	if p.state == s {
		return
	}
	prev := p.state
	p.state = s
	p.emit(EventStatusChanged{Previous: prev, Current: s})
}

// emit sends an event without blocking, dropping it if the buffer is full.
func (p *Player) emit(e Event) {
	select {
	case p.events <- e:
	default:
	}
}

// startPositionLoopLocked emits position events at a bounded rate while
// playing. Caller holds p.mu.
func (p *Player) startPositionLoopLocked() {
	stop := make(chan struct{})
	p.stopPos = stop
	interval := p.posInterval

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				p.mu.Lock()
				if p.state != Playing || p.streamer == nil {
					p.mu.Unlock()
					continue
				}
				pos := p.positionLocked()
				p.mu.Unlock()
				p.emit(EventPositionChanged{Elapsed: pos})
			case <-stop:
				return
			case <-p.done:
				return
			}
		}
	}()
}

// Close stops playback and shuts down the internal goroutines.
func (p *Player) Close() error {
	p.closeOnce.Do(func() {
		p.Stop()
		close(p.done)
	})
	return nil
}

// initSpeaker opens the output device once, at the first track's rate,
// and returns the rate the device runs at. Safe for concurrent callers.
func initSpeaker(rate beep.SampleRate, bufDur time.Duration) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(bufDur)); err != nil {
		return 0, err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return rate, nil
}
