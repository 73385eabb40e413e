// Package rhythmdb reads, mutates, and writes the two XML documents of a
// Rhythmbox data directory: rhythmdb.xml (the track database) and
// playlists.xml.
//
// Both files are owned by Rhythmbox itself and are frequently hand-inspected,
// so mutation has to be surgical. The documents are handled as generic
// ordered trees of elements and character data (beevik/etree) rather than a
// typed object model: untouched entries keep their exact byte layout, and
// inserted elements inherit the indentation of their siblings through the
// tail helpers in this package.
//
// [OpenDatabase] and [OpenPlaylists] validate the root tag (and the database
// version) before any caller gets a chance to mutate; [BackupFiles] enforces
// the backup precondition for a whole data directory and refuses to run when
// a previous backup is still in place.
package rhythmdb
