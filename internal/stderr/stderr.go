//go:build !windows

// Package stderr intercepts writes to file descriptor 2. The audio
// backend's C layers (ALSA in particular) print warnings straight to
// fd 2, which would tear up the terminal UI if left alone.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Lines receives the captured stderr output, one trimmed line at a
// time. The UI drains this channel and shows the lines in its status
// area.
var Lines = make(chan string, 100)

var capture struct {
	active   bool
	savedFd  int
	readEnd  *os.File
	writeEnd *os.File
}

// Start redirects fd 2 into a pipe and begins forwarding its lines to
// Lines. Call it before the audio device is opened. On failure the
// program keeps its normal stderr and can continue.
func Start() error {
	if capture.active {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	saved, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(saved)
		r.Close()
		w.Close()
		return err
	}

	capture.savedFd = saved
	capture.readEnd = r
	capture.writeEnd = w
	capture.active = true

	go forward(r)
	return nil
}

func forward(r *os.File) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case Lines <- line:
		default:
			// Drop rather than block the reader
		}
	}
}

// WriteOriginal writes to the real stderr even while capture is
// active. Fatal errors use this so they stay visible.
func WriteOriginal(msg string) {
	if capture.savedFd > 0 {
		_, _ = syscall.Write(capture.savedFd, []byte(msg))
	}
}

// Stop restores fd 2 and closes the pipe. Call on program exit.
func Stop() {
	if !capture.active {
		return
	}

	_ = syscall.Dup2(capture.savedFd, int(os.Stderr.Fd()))
	_ = syscall.Close(capture.savedFd)

	capture.writeEnd.Close()
	capture.readEnd.Close()

	close(Lines)
	capture.active = false
}
