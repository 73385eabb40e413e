package tasks

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"rhythmsync/internal/library"
	"rhythmsync/internal/rhythmdb"
	"rhythmsync/internal/shared"
)

// DefaultUnknownArtists lists the artist strings Rhythmbox is known to write
// for entries without an artist tag.
var DefaultUnknownArtists = []string{"未知"}

// Engine runs the migration passes. It is single-threaded by design: the
// whole run is one linear pipeline and the dominant cost is reading and
// writing the two XML files once each.
type Engine struct {
	logger         *log.Logger
	unknownArtists map[string]struct{}
}

// NewEngine creates an Engine with the provided logger and unknown-artist
// sentinels. A nil logger defaults to stderr; empty sentinels default to
// [DefaultUnknownArtists].
func NewEngine(logger *log.Logger, unknownArtistSentinels []string) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if len(unknownArtistSentinels) == 0 {
		unknownArtistSentinels = DefaultUnknownArtists
	}

	sentinels := make(map[string]struct{}, len(unknownArtistSentinels))
	for _, s := range unknownArtistSentinels {
		sentinels[s] = struct{}{}
	}

	return &Engine{logger: logger, unknownArtists: sentinels}
}

// SyncStats counts the outcomes of one database pass.
type SyncStats struct {
	Songs      int // song entries processed
	Matched    int // entries matched to an iTunes track
	Unmatched  int // entries with no iTunes counterpart
	Orphans    int // iTunes tracks consumed by no entry
	Overwrites int // pre-existing non-first-seen values replaced
}

// BuildIndex maps every track by its composite key. Two tracks sharing a key
// break the assumption that a key resolves to exactly one track, so a
// collision fails the run before any Rhythmbox file is touched.
func BuildIndex(tracks map[library.TrackID]*library.Track) (map[TrackKey]*library.Track, error) {
	index := make(map[TrackKey]*library.Track, len(tracks))
	for _, track := range tracks {
		key := KeyFromTrack(track)
		if _, exists := index[key]; exists {
			return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateTrack, key)
		}
		index[key] = track
	}
	return index, nil
}

// SyncDatabase walks the song entries of the database in document order,
// matching each against the track index and merging the matched track's
// metadata in place. It returns the identifier→location map for the
// playlist pass.
//
// An unmatched entry is logged and left completely untouched. Entries whose
// type attribute is not "song" (radio stations, podcasts, ignored files)
// pass through without being counted.
func (e *Engine) SyncDatabase(db *rhythmdb.Database, index map[TrackKey]*library.Track) (map[library.TrackID]string, SyncStats, error) {
	var stats SyncStats
	used := make(map[library.TrackID]struct{}, len(index))
	locations := make(map[library.TrackID]string, len(index))

	for _, entry := range db.Root().ChildElements() {
		if entry.Tag != "entry" {
			return nil, stats, fmt.Errorf("%w: unexpected <%s> element", shared.ErrBadDatabase, entry.Tag)
		}
		if entry.SelectAttrValue("type", "") != "song" {
			continue
		}
		stats.Songs++

		key, location, err := e.entryKey(entry)
		if err != nil {
			return nil, stats, err
		}

		track, ok := index[key]
		if !ok {
			e.logger.Warn("song not found in iTunes library", "song", key.String())
			stats.Unmatched++
			continue
		}

		used[track.ID] = struct{}{}
		locations[track.ID] = location
		stats.Matched++

		e.mergeEntry(entry, track, &stats)
	}

	for _, track := range index {
		if _, ok := used[track.ID]; ok {
			continue
		}
		e.logger.Warn("song unused", "song", KeyFromTrack(track).String())
		stats.Orphans++
	}

	return locations, stats, nil
}

// firstSeenTag is exempt from overwrite warnings: it is derived from the
// immutable date-added timestamp and is expected to be rewritten with the
// identical value on every run.
const firstSeenTag = "first-seen"

// mergeEntry applies the matched track's metadata to the entry. Only the
// three migrated children are ever touched.
func (e *Engine) mergeEntry(entry *etree.Element, track *library.Track, stats *SyncStats) {
	key := KeyFromTrack(track)

	e.setEntryField(entry, key, firstSeenTag, strconv.FormatInt(track.DateAdded.Unix(), 10), stats)
	if track.PlayDate != nil {
		e.setEntryField(entry, key, "last-played", strconv.FormatInt(track.PlayDate.Unix(), 10), stats)
	}
	if track.PlayCount != nil && *track.PlayCount > 0 {
		e.setEntryField(entry, key, "play-count", strconv.Itoa(*track.PlayCount), stats)
	}
}

// setEntryField updates the named child in place, or appends it as the last
// child. An appended element takes over the previous last child's tail while
// that child gets the entry's leading indentation, so the serialized entry
// stays aligned with its hand-maintained siblings.
func (e *Engine) setEntryField(entry *etree.Element, key TrackKey, tag, value string, stats *SyncStats) {
	if el := entry.SelectElement(tag); el != nil {
		if tag != firstSeenTag {
			e.logger.Warn("overriding existing value", "tag", tag, "old", el.Text(), "song", key.String())
			stats.Overwrites++
		}
		el.SetText(value)
		return
	}

	el := etree.NewElement(tag)
	el.SetText(value)

	last := rhythmdb.LastChildElement(entry)
	if last == nil {
		entry.AddChild(el)
		return
	}

	indent := entry.Text()
	tail := rhythmdb.Tail(entry, last)
	rhythmdb.SetTail(entry, last, indent)
	entry.AddChild(el)
	rhythmdb.SetTail(entry, el, tail)
}
