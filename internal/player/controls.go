package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop halts the stream, discards the buffer and resets the cursor.
// Idempotent: calling it while Stopped does nothing.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return
	}
	p.teardownLocked()
	p.setStateLocked(Stopped)
	p.mu.Unlock()
}

// Pause halts the stream without discarding the cursor or buffer.
// No-op unless Playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.setStateLocked(Paused)
}

// Resume restarts streaming from the current cursor. No-op unless Paused.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.setStateLocked(Playing)
}

// Toggle switches between playing and paused. No-op if nothing is loaded.
func (p *Player) Toggle() {
	p.mu.Lock()
	playing := p.state == Playing
	paused := p.state == Paused
	p.mu.Unlock()

	switch {
	case playing:
		p.Pause()
	case paused:
		p.Resume()
	}
}

// SeekTo moves the cursor to an absolute position, clamped to
// [0, duration]. Valid while Playing or Paused; no-op with no buffer.
// The frame update happens under the speaker lock, so a seek applies
// either before or after a given callback's frame copy, never mid-copy.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buffer == nil || p.streamer == nil || !p.state.CanSeek() {
		return
	}

	frame := p.buffer.FrameAt(pos)
	speaker.Lock()
	_ = p.streamer.Seek(frame)
	speaker.Unlock()

	p.emit(EventPositionChanged{Elapsed: p.buffer.Format().SampleRate.D(frame)})
}

// Seek moves the cursor by a relative delta, clamped to the buffer.
func (p *Player) Seek(delta time.Duration) {
	p.SeekTo(p.Position() + delta)
}

// Position returns the current cursor position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// positionLocked reads the cursor without the speaker lock; the value may
// be one callback stale, which is acceptable for display and seeks.
func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil || p.buffer == nil {
		return 0
	}
	return p.buffer.Format().SampleRate.D(p.streamer.Position())
}

// Duration returns the duration of the loaded buffer, or 0 if none.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buffer == nil {
		return 0
	}
	return p.buffer.Duration()
}

// State returns the current engine state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
