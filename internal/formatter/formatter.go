// package formatter renders migration reports as plain text for CLI output
package formatter

import (
	"bytes"
	"fmt"

	"rhythmsync/internal/tasks"
)

// SyncSummary renders the result of a full migration run.
func SyncSummary(result *tasks.SyncResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Library: %s\n", result.LibraryPath))
	buf.WriteString(fmt.Sprintf("Rhythmbox: %s\n\n", result.DataDir))

	buf.WriteString(fmt.Sprintf("Tracks considered: %d", result.TracksTotal))
	if result.MoviesExcluded > 0 {
		buf.WriteString(fmt.Sprintf(" (%d movies excluded)", result.MoviesExcluded))
	}
	buf.WriteString("\n")

	db := result.Database
	buf.WriteString(fmt.Sprintf("Database entries merged: %d/%d\n", db.Matched, db.Songs))
	if db.Unmatched > 0 {
		buf.WriteString(fmt.Sprintf("Entries without an iTunes counterpart: %d\n", db.Unmatched))
	}
	if db.Orphans > 0 {
		buf.WriteString(fmt.Sprintf("iTunes tracks not in Rhythmbox: %d\n", db.Orphans))
	}
	if db.Overwrites > 0 {
		buf.WriteString(fmt.Sprintf("Existing values overwritten: %d\n", db.Overwrites))
	}

	pl := result.Playlists
	buf.WriteString(fmt.Sprintf("Playlists migrated: %d", pl.Migrated))
	if pl.SkippedSmart > 0 {
		buf.WriteString(fmt.Sprintf(" (%d smart playlists skipped)", pl.SkippedSmart))
	}
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("Playlist items resolved: %d", pl.ItemsResolved))
	if pl.ItemsUnresolved > 0 {
		buf.WriteString(fmt.Sprintf(" (%d unresolved)", pl.ItemsUnresolved))
	}
	buf.WriteString("\n")

	return buf.Bytes()
}

// InspectSummary renders a read-only library report.
func InspectSummary(report *tasks.InspectReport) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Library: %s\n\n", report.LibraryPath))
	buf.WriteString(fmt.Sprintf("Music tracks: %d\n", report.Tracks))
	buf.WriteString(fmt.Sprintf("Movies (excluded from matching): %d\n", report.Movies))
	buf.WriteString(fmt.Sprintf("Playlists: %d\n", report.Playlists))

	if len(report.SmartPlaylists) > 0 {
		buf.WriteString("\nSmart playlists (will be skipped):\n")
		for _, name := range report.SmartPlaylists {
			buf.WriteString(fmt.Sprintf("  - %s\n", name))
		}
	}

	if report.DuplicateKey != "" {
		buf.WriteString(fmt.Sprintf("\nWARNING: %s\n", report.DuplicateKey))
		buf.WriteString("A migration run will refuse this library until the duplicate is resolved.\n")
	}

	return buf.Bytes()
}
