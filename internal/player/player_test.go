package player

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

// These tests exercise the command surface in states where no audio
// device is required: invalid commands must be silent no-ops.

func TestPlayer_Stop_Idempotent(t *testing.T) {
	p := New()
	defer p.Close()

	p.Stop()
	p.Stop()

	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
	if p.Position() != 0 {
		t.Errorf("Position() = %v, want 0", p.Position())
	}
}

func TestPlayer_Pause_WhileStopped_NoOp(t *testing.T) {
	p := New()
	defer p.Close()

	p.Pause()

	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}

func TestPlayer_Resume_WhileStopped_NoOp(t *testing.T) {
	p := New()
	defer p.Close()

	p.Resume()

	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}

func TestPlayer_Toggle_WhileStopped_NoOp(t *testing.T) {
	p := New()
	defer p.Close()

	p.Toggle()

	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}

func TestPlayer_Seek_WithoutBuffer_NoOp(t *testing.T) {
	p := New()
	defer p.Close()
	sub := p.Events()

	p.SeekTo(10 * time.Second)
	p.Seek(-5 * time.Second)

	if p.Position() != 0 {
		t.Errorf("Position() = %v, want 0", p.Position())
	}
	select {
	case e := <-sub:
		t.Errorf("unexpected event: %+v", e)
	default:
	}
}

func TestPlayer_DurationZeroWithoutBuffer(t *testing.T) {
	p := New()
	defer p.Close()

	if p.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", p.Duration())
	}
}

func TestPlayer_Close_Idempotent(t *testing.T) {
	p := New()

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestPlayer_VolumeClamped(t *testing.T) {
	p := New()
	defer p.Close()

	p.SetVolume(1.5)
	if p.Volume() != 1.0 {
		t.Errorf("Volume() = %v, want 1.0", p.Volume())
	}

	p.SetVolume(-0.5)
	if p.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0", p.Volume())
	}
}

func TestPlayer_MutedStoresLevel(t *testing.T) {
	p := New()
	defer p.Close()

	p.SetVolume(0.5)
	p.SetMuted(true)
	p.SetVolume(0.8)

	if !p.Muted() {
		t.Error("Muted() = false, want true")
	}
	if p.Volume() != 0.8 {
		t.Errorf("Volume() = %v, want 0.8", p.Volume())
	}
}

func TestInitSpeakerConcurrent(t *testing.T) {
	const callers = 8
	rates := make([]beep.SampleRate, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := beep.SampleRate(44100)
			if i%2 == 1 {
				want = 48000
			}
			rates[i], errs[i] = initSpeaker(want, 50*time.Millisecond)
		}(i)
	}
	wg.Wait()

	// Whichever call opened the device, every successful caller must see
	// the same rate afterwards.
	var device beep.SampleRate
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			continue
		}
		if device == 0 {
			device = rates[i]
		}
		if rates[i] != device {
			t.Fatalf("caller %d got rate %v, another got %v", i, rates[i], device)
		}
	}
	if device == 0 {
		t.Skip("no audio output device available")
	}
	if device != 44100 && device != 48000 {
		t.Errorf("device rate = %v, want a requested rate", device)
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{0, -10},
		{-1, -10},
		{1, 0},
		{2, 0},
		{0.5, -1},
		{0.25, -2},
	}

	for _, tt := range tests {
		got := levelToVolume(tt.level)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
