//go:build linux

package mpris

import (
	"os"
	"path/filepath"
)

// Art files are looked up by basename first, then extension, so
// cover.png still beats folder.jpg.
var (
	artBases = []string{"cover", "folder", "album", "front", "albumart"}
	artExts  = []string{".jpg", ".jpeg", ".png"}
)

// FindAlbumArt returns the art file sitting next to the track, or the
// empty string when its directory has none.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, base := range artBases {
		for _, ext := range artExts {
			path := filepath.Join(dir, base+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}
