package shared

import "fmt"

var (
	// Library errors
	ErrBadLibrary     = fmt.Errorf("malformed iTunes library")
	ErrDuplicateTrack = fmt.Errorf("duplicate song in iTunes library")
	ErrBadTrackID     = fmt.Errorf("invalid track id")

	// Rhythmbox database errors
	ErrBadDatabase    = fmt.Errorf("unknown database format")
	ErrBadPlaylists   = fmt.Errorf("unknown playlists format")
	ErrMalformedEntry = fmt.Errorf("malformed database entry")
	ErrBackupExists   = fmt.Errorf("backup already exists")

	// Configuration and input errors
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrNoDataDir       = fmt.Errorf("no data directory available")
)
