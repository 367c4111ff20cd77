//go:build linux

package notify

import "github.com/Dave-01999178/cadence/internal/mpris"

// TrackArt returns the path of the art file to attach to a track
// notification, or the empty string when the track's folder has none.
// The lookup order is the one the MPRIS metadata uses, so the desktop
// notification and the media applet always show the same image.
func TrackArt(trackPath string) string {
	return mpris.FindAlbumArt(trackPath)
}
