package rhythmdb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rhythmsync/internal/shared"
)

// backupSuffix is appended to a file name to form its backup sibling.
const backupSuffix = ".bak"

// BackupFiles copies rhythmdb.xml and playlists.xml in dataDir to .bak
// siblings and returns the paths of the two originals. A backup that is
// already present aborts the whole operation: the .bak files are the only
// safety net against a bad run, and a second run must never overwrite them.
// Each file is checked before anything in dataDir is touched.
func BackupFiles(dataDir string) (dbPath, playlistsPath string, err error) {
	dbPath = filepath.Join(dataDir, DatabaseFilename)
	playlistsPath = filepath.Join(dataDir, PlaylistsFilename)

	for _, path := range []string{dbPath, playlistsPath} {
		if _, err := os.Stat(path + backupSuffix); err == nil {
			return "", "", fmt.Errorf("%w: %s", shared.ErrBackupExists, path+backupSuffix)
		}
	}

	for _, path := range []string{dbPath, playlistsPath} {
		if err := copyFile(path, path+backupSuffix); err != nil {
			return "", "", err
		}
	}

	return dbPath, playlistsPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create backup %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to write backup %s: %w", dst, err)
	}

	return out.Close()
}
