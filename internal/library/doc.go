// Package library loads an exported iTunes Library XML file into the track
// and playlist model used by the sync engine.
//
// # Loading
//
// [Load] parses the property-list export with howett.net/plist and validates
// the fields the engine depends on. Tracks are keyed by [TrackID]; playlist
// items reference tracks by the same identifier.
//
// # Movies
//
// iTunes libraries mix music and video content. Video tracks carry the Movie
// flag and are excluded from matching via [Library.MusicTracks]; they are
// never candidates for Rhythmbox entries or playlists.
//
// # Smart playlists
//
// Rule-based playlists carry a Smart Info blob instead of a usable item list.
// [Playlist.IsSmart] reports them so callers can skip them.
package library
