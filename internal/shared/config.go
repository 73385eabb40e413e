package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library   LibraryConfig   `toml:"library"`
	Rhythmbox RhythmboxConfig `toml:"rhythmbox"`
	Sync      SyncConfig      `toml:"sync"`
	Log       LogConfig       `toml:"log"`
}

// LibraryConfig contains iTunes library settings.
type LibraryConfig struct {
	// Path is the default location of the exported iTunes Library XML file.
	// A positional argument on the command line takes precedence.
	Path string `toml:"path"`
}

// RhythmboxConfig contains Rhythmbox data directory settings.
type RhythmboxConfig struct {
	// Path is the Rhythmbox data directory holding rhythmdb.xml and
	// playlists.xml. Empty means resolve via XDG.
	Path string `toml:"path"`
}

// SyncConfig contains matching behaviour settings.
type SyncConfig struct {
	// UnknownArtistSentinels lists artist strings Rhythmbox writes for
	// entries with no artist tag. Entries carrying one of these match
	// iTunes tracks that have no artist at all.
	UnknownArtistSentinels []string `toml:"unknown_artist_sentinels"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
