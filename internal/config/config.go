package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // folder scanned at startup when no files are given

	// Metadata fallback strings
	Metadata MetadataConfig `koanf:"metadata"`

	// Playback tuning
	Playback PlaybackConfig `koanf:"playback"`

	// Initial volume
	Volume VolumeConfig `koanf:"volume"`

	// Desktop notifications
	Notifications NotificationsConfig `koanf:"notifications"`

	// MPRIS media key integration
	MPRIS MPRISConfig `koanf:"mpris"`
}

// MetadataConfig holds the strings substituted for missing tags.
type MetadataConfig struct {
	UnknownTitle  string `koanf:"unknown_title"`
	UnknownArtist string `koanf:"unknown_artist"`
	UnknownAlbum  string `koanf:"unknown_album"`
}

// PlaybackConfig holds playback engine tuning.
type PlaybackConfig struct {
	SkipOnDecodeError  bool `koanf:"skip_on_decode_error"` // advance past undecodable tracks (default: false)
	PositionIntervalMs int  `koanf:"position_interval_ms"` // position event rate in ms (50-5000, default: 500)
	SpeakerBufferMs    int  `koanf:"speaker_buffer_ms"`    // device buffer length in ms (10-1000, default: 100)
}

// VolumeConfig holds the startup volume.
type VolumeConfig struct {
	Initial float64 `koanf:"initial"` // 0.0-1.0 (default: 1.0)
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// MPRISConfig holds MPRIS integration settings.
type MPRISConfig struct {
	Enabled bool `koanf:"enabled"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	cfg.clamp()
	return cfg, nil
}

// defaults returns the configuration used when no file sets a key.
func defaults() *Config {
	return &Config{
		Metadata: MetadataConfig{
			UnknownTitle:  "Unknown Title",
			UnknownArtist: "Unknown Artist",
			UnknownAlbum:  "Unknown Album",
		},
		Playback: PlaybackConfig{
			PositionIntervalMs: 500,
			SpeakerBufferMs:    100,
		},
		Volume:        VolumeConfig{Initial: 1.0},
		Notifications: NotificationsConfig{Enabled: true},
		MPRIS:         MPRISConfig{Enabled: true},
	}
}

// clamp replaces out-of-range values with defaults.
func (c *Config) clamp() {
	if c.Playback.PositionIntervalMs < 50 || c.Playback.PositionIntervalMs > 5000 {
		c.Playback.PositionIntervalMs = 500
	}
	if c.Playback.SpeakerBufferMs < 10 || c.Playback.SpeakerBufferMs > 1000 {
		c.Playback.SpeakerBufferMs = 100
	}
	if c.Volume.Initial < 0 || c.Volume.Initial > 1 {
		c.Volume.Initial = 1.0
	}
	if c.Metadata.UnknownTitle == "" {
		c.Metadata.UnknownTitle = "Unknown Title"
	}
	if c.Metadata.UnknownArtist == "" {
		c.Metadata.UnknownArtist = "Unknown Artist"
	}
	if c.Metadata.UnknownAlbum == "" {
		c.Metadata.UnknownAlbum = "Unknown Album"
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/cadence/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, "cadence", "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
