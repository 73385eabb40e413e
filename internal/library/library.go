package library

import (
	"fmt"
	"os"
	"time"

	"howett.net/plist"

	"rhythmsync/internal/shared"
)

// Track is one record of the iTunes library export. Optional fields are
// pointers so that an absent key stays distinguishable from a zero value.
type Track struct {
	ID           TrackID    `plist:"Track ID"`
	Name         string     `plist:"Name"`
	Artist       *string    `plist:"Artist"`
	Album        *string    `plist:"Album"`
	Genre        *string    `plist:"Genre"`
	DiscNumber   *int       `plist:"Disc Number"`
	TrackNumber  *int       `plist:"Track Number"`
	Year         *int       `plist:"Year"`
	DateModified time.Time  `plist:"Date Modified"`
	DateAdded    time.Time  `plist:"Date Added"`
	PlayCount    *int       `plist:"Play Count"`
	PlayDate     *time.Time `plist:"Play Date UTC"`
	SkipCount    *int       `plist:"Skip Count"`
	SkipDate     *time.Time `plist:"Skip Date"`
	Rating       *int       `plist:"Rating"`
	Movie        bool       `plist:"Movie"`
	Location     string     `plist:"Location"`
}

// PlaylistItem references a track by its library identifier.
type PlaylistItem struct {
	ID TrackID `plist:"Track ID"`
}

// Playlist is an iTunes playlist. Items keep their export order, including
// repeated references to the same track.
type Playlist struct {
	Name      string         `plist:"Name"`
	ID        int            `plist:"Playlist ID"`
	SmartInfo []byte         `plist:"Smart Info"`
	Items     []PlaylistItem `plist:"Playlist Items"`
}

// IsSmart reports whether the playlist is rule-based rather than a static
// item list.
func (p *Playlist) IsSmart() bool {
	return len(p.SmartInfo) > 0
}

// Library is one loaded iTunes library export.
type Library struct {
	Tracks    map[TrackID]*Track
	Playlists []Playlist
}

// rawLibrary mirrors the plist dictionary layout; track dictionary keys are
// the string form of the track identifier.
type rawLibrary struct {
	Tracks    map[string]*Track `plist:"Tracks"`
	Playlists []Playlist        `plist:"Playlists"`
}

// Load reads and validates an iTunes Library XML file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var raw rawLibrary
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBadLibrary, err)
	}

	lib := &Library{
		Tracks:    make(map[TrackID]*Track, len(raw.Tracks)),
		Playlists: raw.Playlists,
	}
	for key, track := range raw.Tracks {
		id, err := ParseTrackID(key)
		if err != nil {
			return nil, fmt.Errorf("%w: track dictionary key: %v", shared.ErrBadLibrary, err)
		}
		if err := validateTrack(track); err != nil {
			return nil, err
		}
		lib.Tracks[id] = track
	}

	return lib, nil
}

func validateTrack(t *Track) error {
	if t.Name == "" {
		return fmt.Errorf("%w: track %s has no name", shared.ErrBadLibrary, t.ID)
	}
	if t.DateAdded.IsZero() {
		return fmt.Errorf("%w: track %s has no date added", shared.ErrBadLibrary, t.ID)
	}
	return nil
}

// MusicTracks returns the tracks eligible for matching, with movie and video
// content stripped out.
func (l *Library) MusicTracks() map[TrackID]*Track {
	tracks := make(map[TrackID]*Track, len(l.Tracks))
	for id, track := range l.Tracks {
		if track.Movie {
			continue
		}
		tracks[id] = track
	}
	return tracks
}

// MovieCount reports how many tracks of the library are movies.
func (l *Library) MovieCount() int {
	count := 0
	for _, track := range l.Tracks {
		if track.Movie {
			count++
		}
	}
	return count
}
