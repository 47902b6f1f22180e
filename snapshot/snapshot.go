package snapshot

import (
	"time"

	"tunedeck/entities"
)

const currentVersion = 2

// PersistedTrack is the on-disk shape of a playlist entry.
type PersistedTrack struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist,omitempty"`
	AlbumID         string  `json:"album_id,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Ext             string  `json:"ext,omitempty"`
	URL             string  `json:"url,omitempty"`
	FilePath        string  `json:"file_path,omitempty"`
	CatalogID       string  `json:"catalog_id,omitempty"`
}

// Snapshot is the persisted player state, written on every structural
// mutation and on shutdown, read once at startup.
type Snapshot struct {
	Version         int              `json:"version"`
	Playlist        []PersistedTrack `json:"playlist"`
	PlayNext        []PersistedTrack `json:"play_next"`
	CurrentIndex    *int             `json:"current_index"`
	LoopMode        string           `json:"loop_mode"`
	PositionSeconds float64          `json:"position_seconds"`
	Volume          float64          `json:"volume"`
}

// legacySnapshot is the reduced shape older releases wrote. Readers fall
// back to it when the versioned shape does not parse.
type legacySnapshot struct {
	Playlist        []PersistedTrack `json:"playlist"`
	PositionSeconds float64          `json:"position"`
	Volume          float64          `json:"volume"`
}

func Default() Snapshot {
	return Snapshot{
		Version:  currentVersion,
		Playlist: []PersistedTrack{},
		PlayNext: []PersistedTrack{},
		LoopMode: entities.LoopModeSequence.String(),
		Volume:   1.0,
	}
}

func FromTrack(track entities.Track) PersistedTrack {
	return PersistedTrack{
		ID:              track.ID,
		Title:           track.Title,
		Artist:          track.Artist,
		AlbumID:         track.AlbumID,
		DurationSeconds: track.Duration.Seconds(),
		Ext:             track.Ext,
		URL:             track.URL,
		FilePath:        track.FilePath,
		CatalogID:       track.CatalogID,
	}
}

func FromTracks(tracks []entities.Track) []PersistedTrack {
	persisted := make([]PersistedTrack, len(tracks))

	for index, track := range tracks {
		persisted[index] = FromTrack(track)
	}

	return persisted
}

func (pt PersistedTrack) Track() entities.Track {
	return entities.Track{
		ID:        pt.ID,
		Title:     pt.Title,
		Artist:    pt.Artist,
		AlbumID:   pt.AlbumID,
		Duration:  time.Duration(pt.DurationSeconds * float64(time.Second)),
		Ext:       pt.Ext,
		URL:       pt.URL,
		FilePath:  pt.FilePath,
		CatalogID: pt.CatalogID,
	}
}

func ToTracks(persisted []PersistedTrack) []entities.Track {
	tracks := make([]entities.Track, len(persisted))

	for index, pt := range persisted {
		tracks[index] = pt.Track()
	}

	return tracks
}
