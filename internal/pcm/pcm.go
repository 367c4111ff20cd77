// Package pcm decodes audio files into fixed-format in-memory sample buffers.
// A Buffer is decoded eagerly and never mutated afterwards; the playback
// engine binds to exactly one Buffer at a time and replaces it wholesale.
package pcm

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Buffer is a fully-decoded PCM sample buffer plus its stream format.
// It is immutable once built.
type Buffer struct {
	buf    *beep.Buffer
	format beep.Format
}

// NewBuffer collects the given streamer into an in-memory buffer.
// It drains the streamer completely before returning.
func NewBuffer(format beep.Format, s beep.Streamer) *Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return &Buffer{buf: buf, format: format}
}

// Format returns the sample format (rate, channel count, precision).
func (b *Buffer) Format() beep.Format {
	return b.format
}

// Frames returns the total number of frames in the buffer.
func (b *Buffer) Frames() int {
	return b.buf.Len()
}

// Duration returns the total playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	return b.format.SampleRate.D(b.buf.Len())
}

// Streamer returns a fresh seekable streamer over the whole buffer,
// positioned at frame 0. Each call returns an independent cursor.
func (b *Buffer) Streamer() beep.StreamSeeker {
	return b.buf.Streamer(0, b.buf.Len())
}

// FrameAt converts a position to a frame offset, clamped to [0, Frames()].
func (b *Buffer) FrameAt(pos time.Duration) int {
	if pos < 0 {
		return 0
	}
	n := b.format.SampleRate.N(pos)
	if n > b.buf.Len() {
		return b.buf.Len()
	}
	return n
}
