package entities

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Track is a single playlist entry. Identity is the ID; two tracks with the
// same ID are the same track regardless of the other fields. URL and Ext
// start empty for catalog tracks and are filled on first resolution.
type Track struct {
	ID        string
	Title     string
	Artist    string
	AlbumID   string
	Duration  time.Duration
	URL       string
	Ext       string
	FilePath  string
	CatalogID string

	// Resolved stream URLs can expire mid-play. Nil for local files.
	URLExpiresAt *time.Time
}

func NewLocalTrack(path string) Track {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	return Track{
		ID:       uuid.New().String(),
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		Ext:      ext,
		FilePath: path,
	}
}

func NewCatalogTrack(catalogID string, title string, artist string, albumID string, duration time.Duration) Track {
	return Track{
		ID:        catalogID,
		Title:     title,
		Artist:    artist,
		AlbumID:   albumID,
		Duration:  duration,
		CatalogID: catalogID,
	}
}

func (t Track) IsLocal() bool {
	return t.FilePath != ""
}

func (t Track) Equal(other Track) bool {
	return t.ID == other.ID
}

func (t Track) String() string {
	if t.Artist == "" {
		return t.Title
	}

	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}
