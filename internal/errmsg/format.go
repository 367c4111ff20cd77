// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpTrackDecode   Op = "decode track"
	OpTrackAdvance  Op = "advance to next track"

	// Playlist operations
	OpPlaylistAdd    Op = "add tracks"
	OpPlaylistRemove Op = "remove track"
	OpPlaylistClear  Op = "clear playlist"

	// File operations
	OpFileLoad Op = "load file"
	OpFileTags Op = "read file tags"
	OpFileScan Op = "scan folder"

	// Config
	OpConfigLoad Op = "load configuration"

	// Integrations
	OpNotify     Op = "send notification"
	OpMprisStart Op = "start media key integration"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
