package tasks

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"rhythmsync/internal/library"
	"rhythmsync/internal/rhythmdb"
	"rhythmsync/internal/shared"
)

// TrackKey is the composite key correlating an iTunes track with a Rhythmbox
// entry. Absent components are distinct from any present value, including
// the empty string and zero, so each optional component carries its own
// presence flag. The struct is comparable and used directly as a map key.
type TrackKey struct {
	Name        string
	Artist      string
	HasArtist   bool
	Album       string
	HasAlbum    bool
	DiscNumber  int
	HasDisc     bool
	TrackNumber int
	HasTrack    bool
}

// String renders the key as "name / artist / album" for log output.
func (k TrackKey) String() string {
	return fmt.Sprintf("%s / %s / %s", k.Name, k.Artist, k.Album)
}

// KeyFromTrack derives the matching key of an iTunes track.
func KeyFromTrack(t *library.Track) TrackKey {
	key := TrackKey{Name: t.Name}
	if t.Artist != nil {
		key.Artist, key.HasArtist = *t.Artist, true
	}
	if t.Album != nil {
		key.Album, key.HasAlbum = *t.Album, true
	}
	if t.DiscNumber != nil {
		key.DiscNumber, key.HasDisc = *t.DiscNumber, true
	}
	if t.TrackNumber != nil {
		key.TrackNumber, key.HasTrack = *t.TrackNumber, true
	}
	return key
}

// entryKey derives the matching key and location of a rhythmdb song entry.
// Title and location are mandatory for a song entry; a missing one means the
// database itself is malformed. Artist values equal to one of the configured
// unknown-artist sentinels are treated as absent: Rhythmbox writes that
// sentinel where iTunes simply omits the artist, and without the fixup such
// entries could never match.
func (e *Engine) entryKey(entry *etree.Element) (TrackKey, string, error) {
	name, ok := rhythmdb.ChildText(entry, "title")
	if !ok {
		return TrackKey{}, "", fmt.Errorf("%w: song entry without title", shared.ErrMalformedEntry)
	}
	location, ok := rhythmdb.ChildText(entry, "location")
	if !ok {
		return TrackKey{}, "", fmt.Errorf("%w: song entry %q without location", shared.ErrMalformedEntry, name)
	}

	key := TrackKey{Name: name}
	if artist, ok := rhythmdb.ChildText(entry, "artist"); ok && !e.isUnknownArtist(artist) {
		key.Artist, key.HasArtist = artist, true
	}
	if album, ok := rhythmdb.ChildText(entry, "album"); ok {
		key.Album, key.HasAlbum = album, true
	}

	var err error
	if key.DiscNumber, key.HasDisc, err = entryNumber(entry, name, "disc-number"); err != nil {
		return TrackKey{}, "", err
	}
	if key.TrackNumber, key.HasTrack, err = entryNumber(entry, name, "track-number"); err != nil {
		return TrackKey{}, "", err
	}

	return key, location, nil
}

// entryNumber reads an optional numeric child of a song entry. Absence is
// fine; a present value that does not parse as a non-negative integer is a
// hard failure rather than a silent no-match.
func entryNumber(entry *etree.Element, name, tag string) (int, bool, error) {
	s, ok := rhythmdb.ChildText(entry, tag)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("%w: bad %s %q in entry %q", shared.ErrMalformedEntry, tag, s, name)
	}
	return n, true, nil
}

func (e *Engine) isUnknownArtist(artist string) bool {
	_, ok := e.unknownArtists[artist]
	return ok
}
