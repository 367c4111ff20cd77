package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/library/albums",
			expected: filepath.Join(home, "music", "library", "albums"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}

	// Last path is the local config.toml, which has highest priority.
	if paths[len(paths)-1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[len(paths)-1], "config.toml")
	}

	if filepath.Base(filepath.Dir(paths[0])) != "cadence" {
		t.Errorf("first config path = %q, want a cadence directory", paths[0])
	}
}

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.Metadata.UnknownTitle != "Unknown Title" {
		t.Errorf("UnknownTitle = %q, want %q", cfg.Metadata.UnknownTitle, "Unknown Title")
	}
	if cfg.Metadata.UnknownArtist != "Unknown Artist" {
		t.Errorf("UnknownArtist = %q, want %q", cfg.Metadata.UnknownArtist, "Unknown Artist")
	}
	if cfg.Metadata.UnknownAlbum != "Unknown Album" {
		t.Errorf("UnknownAlbum = %q, want %q", cfg.Metadata.UnknownAlbum, "Unknown Album")
	}
	if cfg.Playback.SkipOnDecodeError {
		t.Error("SkipOnDecodeError default = true, want false")
	}
	if cfg.Playback.PositionIntervalMs != 500 {
		t.Errorf("PositionIntervalMs = %d, want 500", cfg.Playback.PositionIntervalMs)
	}
	if cfg.Playback.SpeakerBufferMs != 100 {
		t.Errorf("SpeakerBufferMs = %d, want 100", cfg.Playback.SpeakerBufferMs)
	}
	if cfg.Volume.Initial != 1.0 {
		t.Errorf("Volume.Initial = %f, want 1.0", cfg.Volume.Initial)
	}
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled default = false, want true")
	}
	if !cfg.MPRIS.Enabled {
		t.Error("MPRIS.Enabled default = false, want true")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name             string
		interval         int
		expectedInterval int
		buffer           int
		expectedBuffer   int
		volume           float64
		expectedVolume   float64
	}{
		{
			name:             "values in range kept",
			interval:         250,
			expectedInterval: 250,
			buffer:           50,
			expectedBuffer:   50,
			volume:           0.5,
			expectedVolume:   0.5,
		},
		{
			name:             "lower bounds kept",
			interval:         50,
			expectedInterval: 50,
			buffer:           10,
			expectedBuffer:   10,
			volume:           0,
			expectedVolume:   0,
		},
		{
			name:             "upper bounds kept",
			interval:         5000,
			expectedInterval: 5000,
			buffer:           1000,
			expectedBuffer:   1000,
			volume:           1.0,
			expectedVolume:   1.0,
		},
		{
			name:             "too small replaced with defaults",
			interval:         10,
			expectedInterval: 500,
			buffer:           5,
			expectedBuffer:   100,
			volume:           -0.5,
			expectedVolume:   1.0,
		},
		{
			name:             "too large replaced with defaults",
			interval:         60000,
			expectedInterval: 500,
			buffer:           5000,
			expectedBuffer:   100,
			volume:           2.0,
			expectedVolume:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Playback.PositionIntervalMs = tt.interval
			cfg.Playback.SpeakerBufferMs = tt.buffer
			cfg.Volume.Initial = tt.volume
			cfg.clamp()

			if cfg.Playback.PositionIntervalMs != tt.expectedInterval {
				t.Errorf("PositionIntervalMs = %d, want %d", cfg.Playback.PositionIntervalMs, tt.expectedInterval)
			}
			if cfg.Playback.SpeakerBufferMs != tt.expectedBuffer {
				t.Errorf("SpeakerBufferMs = %d, want %d", cfg.Playback.SpeakerBufferMs, tt.expectedBuffer)
			}
			if cfg.Volume.Initial != tt.expectedVolume {
				t.Errorf("Volume.Initial = %f, want %f", cfg.Volume.Initial, tt.expectedVolume)
			}
		})
	}
}

func TestClampRestoresMetadataDefaults(t *testing.T) {
	cfg := defaults()
	cfg.Metadata.UnknownTitle = ""
	cfg.Metadata.UnknownArtist = ""
	cfg.Metadata.UnknownAlbum = ""
	cfg.clamp()

	if cfg.Metadata.UnknownTitle != "Unknown Title" {
		t.Errorf("UnknownTitle = %q, want default restored", cfg.Metadata.UnknownTitle)
	}
	if cfg.Metadata.UnknownArtist != "Unknown Artist" {
		t.Errorf("UnknownArtist = %q, want default restored", cfg.Metadata.UnknownArtist)
	}
	if cfg.Metadata.UnknownAlbum != "Unknown Album" {
		t.Errorf("UnknownAlbum = %q, want default restored", cfg.Metadata.UnknownAlbum)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	// Load should succeed even with an empty config.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	configContent := `
[metadata]
unknown_title = "<untitled>"

[playback]
skip_on_decode_error = true
position_interval_ms = 250

[volume]
initial = 0.7

[notifications]
enabled = false
`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Metadata.UnknownTitle != "<untitled>" {
		t.Errorf("UnknownTitle = %q, want %q", cfg.Metadata.UnknownTitle, "<untitled>")
	}
	// Unset keys keep their defaults.
	if cfg.Metadata.UnknownArtist != "Unknown Artist" {
		t.Errorf("UnknownArtist = %q, want default", cfg.Metadata.UnknownArtist)
	}
	if !cfg.Playback.SkipOnDecodeError {
		t.Error("SkipOnDecodeError = false, want true")
	}
	if cfg.Playback.PositionIntervalMs != 250 {
		t.Errorf("PositionIntervalMs = %d, want 250", cfg.Playback.PositionIntervalMs)
	}
	if cfg.Volume.Initial != 0.7 {
		t.Errorf("Volume.Initial = %f, want 0.7", cfg.Volume.Initial)
	}
	if cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled = true, want false")
	}
	if !cfg.MPRIS.Enabled {
		t.Error("MPRIS.Enabled = false, want default true")
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte("invalid = [[["), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	_, err = Load()
	if err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}

func TestLoad_DefaultFolderExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	configContent := `default_folder = "~/music"`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "music")
	if cfg.DefaultFolder != expected {
		t.Errorf("DefaultFolder = %q, want %q", cfg.DefaultFolder, expected)
	}
}
