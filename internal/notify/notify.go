// Package notify raises desktop notifications for track changes over
// the freedesktop notification service.
package notify

import "time"

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

// Urgency levels defined by the notification protocol.
const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// trackTimeout is how long a now-playing notification stays visible.
const trackTimeout = 5 * time.Second

// Notification is one message for the notification daemon.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or themed icon name
	Timeout    int32  // ms; -1 server default, 0 sticky
	ReplacesID uint32 // replace an earlier notification, 0 for a new one
	Urgency    Urgency
}

// ForTrack builds the now-playing notification for a track. Track
// changes replace the previous notification instead of stacking, and
// never demand attention.
func ForTrack(title, artist, album, artPath string, replaces uint32) Notification {
	return Notification{
		Title:      title,
		Body:       artist + " - " + album,
		Icon:       artPath,
		Timeout:    int32(trackTimeout / time.Millisecond),
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// Notifier delivers notifications to the desktop.
type Notifier interface {
	// Notify shows n and returns the daemon-assigned ID, or 0 when
	// notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification by ID.
	Close(id uint32) error
}
