package pcm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is wrapped by DecodeError when the file extension
// is not one of the supported formats.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DecodeError reports a failure to decode an audio file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// File extensions the decoder accepts.
const (
	ExtMP3  = ".mp3"
	ExtWAV  = ".wav"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
)

// Supported returns true if the path has a decodable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtWAV, ExtFLAC, ExtOGG:
		return true
	}
	return false
}

// Decode reads the file at path and decodes it fully into memory.
// Unreadable, corrupt or unsupported files return a *DecodeError; the
// caller's playback state is never touched.
func Decode(path string) (*Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch ext {
	case ExtMP3:
		streamer, format, err = mp3.Decode(f)
	case ExtWAV:
		streamer, format, err = wav.Decode(f)
	case ExtFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case ExtOGG:
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &DecodeError{Path: path, Err: errors.New("no audio frames")}
	}

	return &Buffer{buf: buf, format: format}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
// The FLAC decoder does not tolerate a prepended tag.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
