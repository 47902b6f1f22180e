package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config is the application configuration loaded from a TOML file.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Scrobble ScrobbleConfig `toml:"scrobble"`
	Player   PlayerConfig   `toml:"player"`
}

type PathsConfig struct {
	CacheDir     string `toml:"cache_dir"`
	SnapshotPath string `toml:"snapshot_path"`
}

type CatalogConfig struct {
	Tool                  string `toml:"tool"`
	ResolveTimeoutSeconds int    `toml:"resolve_timeout_seconds"`
	ScrobbleURL           string `toml:"scrobble_url"`
}

// ScrobbleConfig keeps the play-report thresholds tunable; they are
// heuristics, not part of the state machine.
type ScrobbleConfig struct {
	MinPlayedSeconds int  `toml:"min_played_seconds"`
	RequireReady     bool `toml:"require_ready"`
}

type PlayerConfig struct {
	PositionReportMillis int     `toml:"position_report_millis"`
	Volume               float64 `toml:"volume"`
}

// Load reads and parses a TOML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var conf Config

	meta, err := toml.Decode(string(data), &conf)

	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// The zero value would silently drop the readiness requirement for any
	// config that omits the key; only a written-out false disables it.
	if !meta.IsDefined("scrobble", "require_ready") {
		conf.Scrobble.RequireReady = true
	}

	conf.applyDefaults()

	return &conf, nil
}

// Default returns the configuration parsed from the embedded example file.
func Default() *Config {
	var conf Config

	if err := toml.Unmarshal(exampleConf, &conf); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}

	conf.applyDefaults()

	return &conf
}

// CreateConfigFile writes the embedded example config to path for the user
// to edit. Fails when a config already exists there.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (conf *Config) ResolveTimeout() time.Duration {
	return time.Duration(conf.Catalog.ResolveTimeoutSeconds) * time.Second
}

func (conf *Config) PositionReportInterval() time.Duration {
	return time.Duration(conf.Player.PositionReportMillis) * time.Millisecond
}

func (conf *Config) applyDefaults() {
	if conf.Paths.CacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			conf.Paths.CacheDir = filepath.Join(base, "tunedeck", "tracks")
		} else {
			conf.Paths.CacheDir = filepath.Join(os.TempDir(), "tunedeck", "tracks")
		}
	}

	if conf.Paths.SnapshotPath == "" {
		if base, err := os.UserConfigDir(); err == nil {
			conf.Paths.SnapshotPath = filepath.Join(base, "tunedeck", "state.json")
		} else {
			conf.Paths.SnapshotPath = filepath.Join(os.TempDir(), "tunedeck", "state.json")
		}
	}

	if conf.Catalog.Tool == "" {
		conf.Catalog.Tool = "tdk-resolve"
	}

	if conf.Catalog.ResolveTimeoutSeconds <= 0 {
		conf.Catalog.ResolveTimeoutSeconds = 30
	}

	if conf.Scrobble.MinPlayedSeconds <= 0 {
		conf.Scrobble.MinPlayedSeconds = 30
	}

	if conf.Player.PositionReportMillis <= 0 {
		conf.Player.PositionReportMillis = 250
	}

	if conf.Player.Volume < 0 {
		conf.Player.Volume = 0
	}

	if conf.Player.Volume > 1 {
		conf.Player.Volume = 1
	}
}
