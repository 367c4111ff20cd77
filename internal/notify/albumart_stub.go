//go:build !linux

package notify

// TrackArt returns the empty string on platforms without the MPRIS
// art lookup.
func TrackArt(_ string) string {
	return ""
}
