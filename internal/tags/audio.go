package tags

import (
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

// ReadAudioInfo reads audio stream properties (duration, sample rate)
// from the file headers. The decoders compute the stream length without
// decoding sample data into memory.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		name     string
	)

	switch ext {
	case ExtMP3:
		streamer, format, err = mp3.Decode(f)
		name = "MP3"
	case ExtWAV:
		streamer, format, err = wav.Decode(f)
		name = "WAV"
	case ExtFLAC:
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
		name = "FLAC"
	case ExtOGG:
		streamer, format, err = vorbis.Decode(f)
		name = "OGG"
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     name,
		SampleRate: int(format.SampleRate),
	}, nil
}

// skipID3v2 skips an ID3v2 tag if present; some taggers prepend one to
// FLAC files and the FLAC decoder does not tolerate it.
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

	// Syncsafe integer in bytes 6-9, 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
