package tasks

import (
	"fmt"

	"rhythmsync/internal/library"
	"rhythmsync/internal/rhythmdb"
)

// SyncResult contains all data from a full migration run.
type SyncResult struct {
	LibraryPath    string
	DataDir        string
	TracksTotal    int // music tracks considered for matching
	MoviesExcluded int // video content dropped before matching
	Database       SyncStats
	Playlists      PlaylistStats
}

// InspectReport summarizes a library export without touching Rhythmbox.
type InspectReport struct {
	LibraryPath    string
	Tracks         int // music tracks
	Movies         int
	Playlists      int
	SmartPlaylists []string
	DuplicateKey   string // first colliding key, empty when the invariant holds
}

// Run performs the full migration pipeline: load and index the iTunes
// library, back up the Rhythmbox files, merge metadata into the database,
// and migrate playlists. Each pass persists exactly once, after the whole
// pass has succeeded; a failure anywhere leaves nothing partially written.
func (e *Engine) Run(libraryPath, dataDir string) (*SyncResult, error) {
	e.logger.Info("reading iTunes library", "path", libraryPath)
	lib, err := library.Load(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read iTunes library: %w", err)
	}

	tracks := lib.MusicTracks()
	index, err := BuildIndex(tracks)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		LibraryPath:    libraryPath,
		DataDir:        dataDir,
		TracksTotal:    len(tracks),
		MoviesExcluded: lib.MovieCount(),
	}

	e.logger.Info("backing up existing Rhythmbox files", "dir", dataDir)
	dbPath, playlistsPath, err := rhythmdb.BackupFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to backup Rhythmbox files: %w", err)
	}

	e.logger.Info("reading Rhythmbox database", "path", dbPath)
	db, err := rhythmdb.OpenDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to synchronize to Rhythmbox database: %w", err)
	}

	e.logger.Info("synchronizing to Rhythmbox database")
	locations, stats, err := e.SyncDatabase(db, index)
	if err != nil {
		return nil, fmt.Errorf("failed to synchronize to Rhythmbox database: %w", err)
	}
	result.Database = stats

	e.logger.Info("saving the change to Rhythmbox database")
	if err := db.Save(dbPath); err != nil {
		return nil, fmt.Errorf("failed to synchronize to Rhythmbox database: %w", err)
	}

	e.logger.Info("reading Rhythmbox playlists", "path", playlistsPath)
	pls, err := rhythmdb.OpenPlaylists(playlistsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate playlists: %w", err)
	}

	e.logger.Info("migrating playlists")
	result.Playlists = e.MigratePlaylists(pls, lib.Playlists, locations)

	e.logger.Info("saving the playlists")
	if err := pls.Save(playlistsPath); err != nil {
		return nil, fmt.Errorf("failed to migrate playlists: %w", err)
	}

	return result, nil
}

// Inspect loads a library export and reports what a migration would work
// with. The duplicate-key invariant is checked but reported rather than
// failing, so a broken export can still be examined.
func (e *Engine) Inspect(libraryPath string) (*InspectReport, error) {
	lib, err := library.Load(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read iTunes library: %w", err)
	}

	report := &InspectReport{
		LibraryPath: libraryPath,
		Tracks:      len(lib.MusicTracks()),
		Movies:      lib.MovieCount(),
		Playlists:   len(lib.Playlists),
	}

	for i := range lib.Playlists {
		if lib.Playlists[i].IsSmart() {
			report.SmartPlaylists = append(report.SmartPlaylists, lib.Playlists[i].Name)
		}
	}

	if _, err := BuildIndex(lib.MusicTracks()); err != nil {
		report.DuplicateKey = err.Error()
	}

	return report, nil
}
