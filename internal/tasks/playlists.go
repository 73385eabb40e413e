package tasks

import (
	"github.com/beevik/etree"

	"rhythmsync/internal/library"
	"rhythmsync/internal/rhythmdb"
)

// PlaylistStats counts the outcomes of one playlist pass.
type PlaylistStats struct {
	Migrated        int // static playlists appended
	SkippedSmart    int // smart playlists skipped
	ItemsResolved   int // item references resolved to a location
	ItemsUnresolved int // item references with no matched location
}

// MigratePlaylists appends each static iTunes playlist to the playlists
// document in source order. Item references resolve through the
// identifier→location map produced by the database pass; unresolved items
// are counted and skipped, and a playlist that resolves to nothing is still
// emitted as an empty element rather than silently dropped. Smart playlists
// are skipped entirely.
func (e *Engine) MigratePlaylists(p *rhythmdb.Playlists, playlists []library.Playlist, locations map[library.TrackID]string) PlaylistStats {
	var stats PlaylistStats
	root := p.Root()

	if last := rhythmdb.LastChildElement(root); last != nil {
		rhythmdb.SetTail(root, last, "\n  ")
	}

	for i := range playlists {
		pl := &playlists[i]
		if pl.IsSmart() {
			e.logger.Warn("playlist skipped because it's smart", "playlist", pl.Name)
			stats.SkippedSmart++
			continue
		}

		el := etree.NewElement("playlist")
		el.CreateAttr("name", pl.Name)
		el.CreateAttr("type", "static")
		el.SetText("\n    ")

		unfound := 0
		for _, item := range pl.Items {
			location, ok := locations[item.ID]
			if !ok {
				unfound++
				continue
			}
			locEl := etree.NewElement("location")
			locEl.SetText(location)
			el.AddChild(locEl)
			rhythmdb.SetTail(el, locEl, "\n    ")
		}

		if last := rhythmdb.LastChildElement(el); last != nil {
			rhythmdb.SetTail(el, last, "\n  ")
		} else {
			el.SetText("")
		}

		root.AddChild(el)
		rhythmdb.SetTail(root, el, "\n  ")

		stats.Migrated++
		stats.ItemsResolved += len(pl.Items) - unfound
		stats.ItemsUnresolved += unfound
		if unfound > 0 {
			e.logger.Warn("playlist items not found", "playlist", pl.Name, "count", unfound)
		}
	}

	if last := rhythmdb.LastChildElement(root); last != nil {
		rhythmdb.SetTail(root, last, "\n")
	}

	return stats
}
