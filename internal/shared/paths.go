package shared

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

// rhythmboxDirName is the subdirectory of the user data directory where
// Rhythmbox keeps rhythmdb.xml and playlists.xml.
const rhythmboxDirName = "rhythmbox"

// DefaultRhythmboxDir resolves the platform-standard Rhythmbox data
// directory ($XDG_DATA_HOME/rhythmbox, typically ~/.local/share/rhythmbox).
func DefaultRhythmboxDir() (string, error) {
	if xdg.DataHome == "" {
		return "", fmt.Errorf("%w: please specify the Rhythmbox data dir", ErrNoDataDir)
	}
	return filepath.Join(xdg.DataHome, rhythmboxDirName), nil
}
