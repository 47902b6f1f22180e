package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Storage manages the on-disk track cache. Layout is one file per track id,
// named {id}.{ext}. Presence of that file means a complete, playable copy;
// in-flight downloads live next to it as {id}.{ext}.part and are renamed
// only once every expected byte is on disk.
type Storage struct {
	dir    string
	logger *log.Logger
}

func NewStorage(dir string, logger *log.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	return &Storage{
		dir:    dir,
		logger: logger.With("component", "cache"),
	}, nil
}

func (storage *Storage) Dir() string {
	return storage.dir
}

func (storage *Storage) EntryPath(id string, ext string) string {
	return filepath.Join(storage.dir, id+"."+ext)
}

func (storage *Storage) PartPath(id string, ext string) string {
	return storage.EntryPath(id, ext) + ".part"
}

// Lookup reports whether a complete cache entry exists for the track.
func (storage *Storage) Lookup(id string, ext string) (string, bool) {
	path := storage.EntryPath(id, ext)

	info, err := os.Stat(path)

	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}

	return path, true
}

func (storage *Storage) Remove(id string, ext string) error {
	return os.Remove(storage.EntryPath(id, ext))
}

// Sweep removes leftover part files and empty entries from earlier runs. A
// half-written file must never be discoverable as playable.
func (storage *Storage) Sweep() error {
	entries, err := os.ReadDir(storage.dir)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(storage.dir, entry.Name())

		if strings.HasSuffix(entry.Name(), ".part") {
			storage.logger.Debug("removing stale partial download", "file", entry.Name())
			_ = os.Remove(path)
			continue
		}

		info, err := entry.Info()

		if err == nil && info.Size() == 0 {
			storage.logger.Debug("removing empty cache entry", "file", entry.Name())
			_ = os.Remove(path)
		}
	}

	return nil
}
