package rhythmdb

import (
	"fmt"

	"github.com/beevik/etree"

	"rhythmsync/internal/shared"
)

const (
	// DatabaseFilename is the track database file inside the Rhythmbox
	// data directory.
	DatabaseFilename = "rhythmdb.xml"
	// PlaylistsFilename is the playlists file inside the Rhythmbox data
	// directory.
	PlaylistsFilename = "playlists.xml"

	databaseRootTag = "rhythmdb"
	databaseVersion = "2.0"

	playlistsRootTag = "rhythmdb-playlists"
)

// Database is a loaded rhythmdb.xml document.
type Database struct {
	doc  *etree.Document
	root *etree.Element
}

// OpenDatabase reads a rhythmdb.xml file and validates its format. Anything
// other than a version 2.0 rhythmdb document is rejected before the caller
// can mutate it.
func OpenDatabase(path string) (*Database, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read database: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != databaseRootTag {
		return nil, shared.ErrBadDatabase
	}
	if version := root.SelectAttrValue("version", ""); version != databaseVersion {
		return nil, fmt.Errorf("%w: unknown database version %q", shared.ErrBadDatabase, version)
	}

	return &Database{doc: doc, root: root}, nil
}

// Root returns the rhythmdb root element.
func (d *Database) Root() *etree.Element {
	return d.root
}

// Save writes the document back to disk, preserving the layout of all
// untouched nodes.
func (d *Database) Save(path string) error {
	if err := d.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to update database: %w", err)
	}
	return nil
}

// Playlists is a loaded playlists.xml document.
type Playlists struct {
	doc  *etree.Document
	root *etree.Element
}

// OpenPlaylists reads a playlists.xml file and validates its root tag.
func OpenPlaylists(path string) (*Playlists, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != playlistsRootTag {
		return nil, shared.ErrBadPlaylists
	}

	return &Playlists{doc: doc, root: root}, nil
}

// Root returns the rhythmdb-playlists root element.
func (p *Playlists) Root() *etree.Element {
	return p.root
}

// Save writes the document back to disk.
func (p *Playlists) Save(path string) error {
	if err := p.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to update playlists: %w", err)
	}
	return nil
}
