//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does
// not write warnings to fd 2.
package stderr

import "os"

// Lines never receives anything on Windows.
var Lines = make(chan string)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
