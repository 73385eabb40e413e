// Package tasks implements the iTunes → Rhythmbox migration pipeline.
//
// # Core Operations
//
// The [Engine] exposes two operations:
//
//  1. [Engine.Run] : full migration
//     - Loads the iTunes library export and drops movie content
//     - Indexes tracks by [TrackKey] and rejects duplicate keys
//     - Backs up rhythmdb.xml and playlists.xml (existing backups abort)
//     - Matches each song entry of the database against the index and
//       merges first-seen, last-played, and play-count in place
//     - Resolves static playlists through the identifier→location map
//       produced by the database pass
//
//  2. [Engine.Inspect] : read-only library preflight
//     - Loads and validates the export without touching Rhythmbox files
//     - Reports track/playlist counts, movie content, smart playlists,
//       and whether the duplicate-key invariant holds
//
// # Matching
//
// A [TrackKey] is the composite of name, artist, album, disc number, and
// track number. There is no shared identifier between iTunes and Rhythmbox,
// so this key is the sole correlation basis. Matching is exact: the only
// normalization is the unknown-artist fixup, which treats configured
// sentinel strings on a Rhythmbox entry as an absent artist.
//
// # Merge semantics
//
// first-seen is always written; last-played only when the track has a play
// date; play-count only when greater than zero, so a never-played track can
// not clobber an existing count. Overwriting anything but first-seen is
// logged with the old value. Inserted children inherit the indentation of
// their siblings, keeping the document diffable.
package tasks
