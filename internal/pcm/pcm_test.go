package pcm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

var testFormat = beep.Format{
	SampleRate:  beep.SampleRate(44100),
	NumChannels: 2,
	Precision:   2,
}

// silenceBuffer builds a buffer of n silent frames for tests.
func silenceBuffer(t *testing.T, n int) *Buffer {
	t.Helper()
	return NewBuffer(testFormat, beep.Silence(n))
}

func TestBuffer_Frames(t *testing.T) {
	b := silenceBuffer(t, 4410)

	if b.Frames() != 4410 {
		t.Errorf("Frames() = %d, want 4410", b.Frames())
	}
}

func TestBuffer_Duration(t *testing.T) {
	b := silenceBuffer(t, 44100)

	if b.Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", b.Duration())
	}
}

func TestBuffer_Streamer_StartsAtZero(t *testing.T) {
	b := silenceBuffer(t, 100)

	s := b.Streamer()

	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}
	if s.Len() != 100 {
		t.Errorf("Len() = %d, want 100", s.Len())
	}
}

func TestBuffer_Streamer_IndependentCursors(t *testing.T) {
	b := silenceBuffer(t, 100)

	s1 := b.Streamer()
	s2 := b.Streamer()
	if err := s1.Seek(50); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	if s2.Position() != 0 {
		t.Errorf("second streamer Position() = %d, want 0", s2.Position())
	}
}

func TestBuffer_FrameAt_Clamps(t *testing.T) {
	b := silenceBuffer(t, 44100) // exactly 1 second

	tests := []struct {
		name string
		pos  time.Duration
		want int
	}{
		{"negative clamps to zero", -time.Second, 0},
		{"zero", 0, 0},
		{"mid", 500 * time.Millisecond, 22050},
		{"end", time.Second, 44100},
		{"past end clamps to frame count", 15 * time.Second, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.FrameAt(tt.pos); got != tt.want {
				t.Errorf("FrameAt(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.wav", true},
		{"song.flac", true},
		{"song.ogg", true},
		{"notes.txt", false},
		{"cover.jpg", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	_, err := Decode("a.txt")

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Decode() error = %T, want *DecodeError", err)
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error does not wrap ErrUnsupportedFormat: %v", err)
	}
}

func TestDecode_MissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.mp3"))

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Decode() error = %T, want *DecodeError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not wrap os.ErrNotExist: %v", err)
	}
	if decErr.Path == "" {
		t.Error("DecodeError.Path is empty")
	}
}

func TestDecode_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("this is not audio data"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Decode(path)

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Decode() error = %T, want *DecodeError", err)
	}
}
