package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Store reads and writes the snapshot file. Writes go through a temp file
// and a rename so a crash mid-write cannot corrupt the previous snapshot.
type Store struct {
	path   string
	logger *log.Logger
}

func NewStore(path string, logger *log.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With("component", "snapshot"),
	}
}

func (store *Store) Save(snap Snapshot) error {
	snap.Version = currentVersion

	data, err := json.MarshalIndent(snap, "", "  ")

	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tempPath := store.path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := os.Rename(tempPath, store.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot. An unreadable or unparseable file degrades: the
// versioned shape first, then the reduced legacy shape, then the default.
// The returned error reports what went wrong; the Snapshot is always usable.
func (store *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(store.path)

	if os.IsNotExist(err) {
		return Default(), nil
	}

	if err != nil {
		return Default(), fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot

	if err := json.Unmarshal(data, &snap); err == nil && snap.Version >= 1 {
		if snap.Playlist == nil {
			snap.Playlist = []PersistedTrack{}
		}
		if snap.PlayNext == nil {
			snap.PlayNext = []PersistedTrack{}
		}

		return clamped(snap), nil
	}

	var legacy legacySnapshot

	if err := json.Unmarshal(data, &legacy); err == nil && legacy.Playlist != nil {
		store.logger.Info("snapshot uses legacy shape, upgrading")

		upgraded := Default()
		upgraded.Playlist = legacy.Playlist
		upgraded.PositionSeconds = legacy.PositionSeconds
		upgraded.Volume = legacy.Volume

		return clamped(upgraded), nil
	}

	store.logger.Warn("snapshot unreadable, starting from defaults", "path", store.path)

	return Default(), fmt.Errorf("snapshot did not match any known shape")
}

func clamped(snap Snapshot) Snapshot {
	if snap.Volume < 0 {
		snap.Volume = 0
	}

	if snap.Volume > 1 {
		snap.Volume = 1
	}

	if snap.CurrentIndex != nil {
		index := *snap.CurrentIndex

		if index < 0 || index >= len(snap.Playlist) {
			snap.CurrentIndex = nil
		}
	}

	return snap
}
