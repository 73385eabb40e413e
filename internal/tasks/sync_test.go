package tasks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rhythmsync/internal/library"
	"rhythmsync/internal/rhythmdb"
	"rhythmsync/internal/shared"
)

const syncDatabaseXML = `<?xml version="1.0" standalone="yes"?>
<rhythmdb version="2.0">
  <entry type="song">
    <title>Holiday</title>
    <artist>Green Day</artist>
    <album>American Idiot</album>
    <disc-number>1</disc-number>
    <track-number>3</track-number>
    <location>file:///music/holiday.mp3</location>
  </entry>
  <entry type="iradio">
    <title>Radio X</title>
    <location>http://example.com/x</location>
  </entry>
  <entry type="song">
    <title>Nightcall</title>
    <location>file:///music/nightcall.mp3</location>
  </entry>
</rhythmdb>
`

func openTestDatabase(t *testing.T, xml string) (*rhythmdb.Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), rhythmdb.DatabaseFilename)
	if err := os.WriteFile(path, []byte(xml), 0644); err != nil {
		t.Fatalf("failed to write database fixture: %v", err)
	}
	db, err := rhythmdb.OpenDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database fixture: %v", err)
	}
	return db, path
}

func bufferedEngine(sentinels []string) (*Engine, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewEngine(shared.NewLogger(&buf), sentinels), &buf
}

// holidayTrack matches the first song entry of syncDatabaseXML on every key
// component and carries a play history.
func holidayTrack() *library.Track {
	track := testTrack(101, "Holiday")
	track.Artist = strPtr("Green Day")
	track.Album = strPtr("American Idiot")
	track.DiscNumber = intPtr(1)
	track.TrackNumber = intPtr(3)
	track.PlayCount = intPtr(17)
	track.PlayDate = timePtr(time.Date(2021, 11, 20, 19, 4, 5, 0, time.UTC))
	track.Location = "file:///itunes/holiday.mp3"
	return track
}

// nightcallTrack matches the bare second song entry and has never been
// played: a present-but-zero play count and no play date.
func nightcallTrack() *library.Track {
	track := testTrack(102, "Nightcall")
	track.DateAdded = time.Date(2020, 7, 14, 12, 0, 0, 0, time.UTC)
	track.PlayCount = intPtr(0)
	return track
}

func mustIndex(t *testing.T, tracks ...*library.Track) map[TrackKey]*library.Track {
	t.Helper()
	byID := make(map[library.TrackID]*library.Track, len(tracks))
	for _, track := range tracks {
		byID[track.ID] = track
	}
	index, err := BuildIndex(byID)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return index
}

func TestBuildIndex(t *testing.T) {
	t.Run("distinct keys", func(t *testing.T) {
		a := testTrack(1, "Song")
		a.TrackNumber = intPtr(1)
		b := testTrack(2, "Song")
		b.TrackNumber = intPtr(2)

		index, err := BuildIndex(map[library.TrackID]*library.Track{1: a, 2: b})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(index) != 2 {
			t.Errorf("expected 2 keys, got %d", len(index))
		}
	})

	t.Run("duplicate keys are fatal", func(t *testing.T) {
		a := testTrack(1, "Song")
		b := testTrack(2, "Song")
		// Fields outside the key must not disambiguate.
		b.PlayCount = intPtr(99)
		b.Location = "file:///elsewhere.mp3"

		_, err := BuildIndex(map[library.TrackID]*library.Track{1: a, 2: b})
		if !errors.Is(err, shared.ErrDuplicateTrack) {
			t.Fatalf("expected ErrDuplicateTrack, got %v", err)
		}
	})
}

func TestSyncDatabase(t *testing.T) {
	t.Run("merges matched entries", func(t *testing.T) {
		engine, logs := bufferedEngine(nil)
		db, path := openTestDatabase(t, syncDatabaseXML)
		holiday := holidayTrack()
		nightcall := nightcallTrack()

		locations, stats, err := engine.SyncDatabase(db, mustIndex(t, holiday, nightcall))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Songs != 2 || stats.Matched != 2 || stats.Unmatched != 0 || stats.Orphans != 0 {
			t.Errorf("unexpected stats %+v", stats)
		}

		if loc := locations[101]; loc != "file:///music/holiday.mp3" {
			t.Errorf("unexpected location for 101: %q", loc)
		}
		if loc := locations[102]; loc != "file:///music/nightcall.mp3" {
			t.Errorf("unexpected location for 102: %q", loc)
		}

		if err := db.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved database: %v", err)
		}

		want := fmt.Sprintf(`<?xml version="1.0" standalone="yes"?>
<rhythmdb version="2.0">
  <entry type="song">
    <title>Holiday</title>
    <artist>Green Day</artist>
    <album>American Idiot</album>
    <disc-number>1</disc-number>
    <track-number>3</track-number>
    <location>file:///music/holiday.mp3</location>
    <first-seen>%d</first-seen>
    <last-played>%d</last-played>
    <play-count>17</play-count>
  </entry>
  <entry type="iradio">
    <title>Radio X</title>
    <location>http://example.com/x</location>
  </entry>
  <entry type="song">
    <title>Nightcall</title>
    <location>file:///music/nightcall.mp3</location>
    <first-seen>%d</first-seen>
  </entry>
</rhythmdb>
`, holiday.DateAdded.Unix(), holiday.PlayDate.Unix(), nightcall.DateAdded.Unix())

		if string(got) != want {
			t.Errorf("unexpected database output\nwant:\n%s\ngot:\n%s", want, got)
		}

		if strings.Contains(logs.String(), "overriding") {
			t.Errorf("no overwrite warnings expected, got %q", logs.String())
		}
	})

	t.Run("zero play count is never written", func(t *testing.T) {
		engine, _ := bufferedEngine(nil)
		db, path := openTestDatabase(t, syncDatabaseXML)

		_, _, err := engine.SyncDatabase(db, mustIndex(t, nightcallTrack()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := db.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		got, _ := os.ReadFile(path)
		if strings.Contains(string(got), "<play-count>") {
			t.Error("zero play count must not create a play-count child")
		}
		if strings.Contains(string(got), "<last-played>") {
			t.Error("absent play date must not create a last-played child")
		}
	})

	t.Run("unmatched entries stay untouched", func(t *testing.T) {
		engine, logs := bufferedEngine(nil)
		db, path := openTestDatabase(t, syncDatabaseXML)

		locations, stats, err := engine.SyncDatabase(db, mustIndex(t, holidayTrack()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Matched != 1 || stats.Unmatched != 1 {
			t.Errorf("unexpected stats %+v", stats)
		}
		if _, ok := locations[102]; ok {
			t.Error("unmatched entry must not contribute to the location map")
		}
		if !strings.Contains(logs.String(), "song not found") || !strings.Contains(logs.String(), "Nightcall") {
			t.Errorf("expected unmatched warning, got %q", logs.String())
		}

		if err := db.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		got, _ := os.ReadFile(path)
		if strings.Count(string(got), "<first-seen>") != 1 {
			t.Error("only the matched entry may gain a first-seen child")
		}
	})

	t.Run("overwrite of existing play count is logged", func(t *testing.T) {
		const withPlayCount = `<?xml version="1.0" standalone="yes"?>
<rhythmdb version="2.0">
  <entry type="song">
    <title>Holiday</title>
    <artist>Green Day</artist>
    <album>American Idiot</album>
    <disc-number>1</disc-number>
    <track-number>3</track-number>
    <location>file:///music/holiday.mp3</location>
    <play-count>4</play-count>
  </entry>
</rhythmdb>
`
		engine, logs := bufferedEngine(nil)
		db, path := openTestDatabase(t, withPlayCount)

		_, stats, err := engine.SyncDatabase(db, mustIndex(t, holidayTrack()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Overwrites != 1 {
			t.Errorf("expected 1 overwrite, got %d", stats.Overwrites)
		}
		out := logs.String()
		if !strings.Contains(out, "overriding") || !strings.Contains(out, "play-count") || !strings.Contains(out, "old=4") {
			t.Errorf("expected overwrite warning with old value, got %q", out)
		}

		if err := db.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		got, _ := os.ReadFile(path)
		if !strings.Contains(string(got), "<play-count>17</play-count>") {
			t.Error("expected play-count updated in place")
		}
		if strings.Count(string(got), "<play-count>") != 1 {
			t.Error("play-count must be updated, not duplicated")
		}
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		engine, _ := bufferedEngine(nil)
		db, path := openTestDatabase(t, syncDatabaseXML)
		index := mustIndex(t, holidayTrack(), nightcallTrack())

		if _, _, err := engine.SyncDatabase(db, index); err != nil {
			t.Fatalf("first pass failed: %v", err)
		}
		if err := db.Save(path); err != nil {
			t.Fatalf("failed to save first pass: %v", err)
		}
		first, _ := os.ReadFile(path)

		again, err := rhythmdb.OpenDatabase(path)
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		engine2, logs := bufferedEngine(nil)
		if _, _, err := engine2.SyncDatabase(again, index); err != nil {
			t.Fatalf("second pass failed: %v", err)
		}
		if err := again.Save(path); err != nil {
			t.Fatalf("failed to save second pass: %v", err)
		}
		second, _ := os.ReadFile(path)

		if !bytes.Equal(first, second) {
			t.Errorf("second pass changed the database\nfirst:\n%s\nsecond:\n%s", first, second)
		}
		if strings.Contains(logs.String(), "first-seen") {
			t.Errorf("first-seen must be rewritten silently, got %q", logs.String())
		}
	})

	t.Run("orphan tracks are reported", func(t *testing.T) {
		engine, logs := bufferedEngine(nil)
		db, _ := openTestDatabase(t, syncDatabaseXML)

		orphan := testTrack(900, "Not In Rhythmbox")
		_, stats, err := engine.SyncDatabase(db, mustIndex(t, holidayTrack(), nightcallTrack(), orphan))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stats.Orphans != 1 {
			t.Errorf("expected 1 orphan, got %d", stats.Orphans)
		}
		if !strings.Contains(logs.String(), "song unused") || !strings.Contains(logs.String(), "Not In Rhythmbox") {
			t.Errorf("expected orphan warning, got %q", logs.String())
		}
	})

	t.Run("unknown element is fatal", func(t *testing.T) {
		engine, _ := bufferedEngine(nil)
		db, _ := openTestDatabase(t, `<?xml version="1.0"?>
<rhythmdb version="2.0">
  <record type="song"><title>X</title><location>file:///x.mp3</location></record>
</rhythmdb>
`)

		_, _, err := engine.SyncDatabase(db, mustIndex(t))
		if !errors.Is(err, shared.ErrBadDatabase) {
			t.Errorf("expected ErrBadDatabase, got %v", err)
		}
	})

	t.Run("song entry without title is fatal", func(t *testing.T) {
		engine, _ := bufferedEngine(nil)
		db, _ := openTestDatabase(t, `<?xml version="1.0"?>
<rhythmdb version="2.0">
  <entry type="song"><location>file:///x.mp3</location></entry>
</rhythmdb>
`)

		_, _, err := engine.SyncDatabase(db, mustIndex(t))
		if !errors.Is(err, shared.ErrMalformedEntry) {
			t.Errorf("expected ErrMalformedEntry, got %v", err)
		}
	})
}
