// Package config provides configuration for demotimer.
// Configuration is loaded from multiple sources with the following
// precedence: embedded defaults → user file → env vars → CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var embeddedDefaults []byte

// Config holds all demotimer settings.
type Config struct {
	SegmentsFile string `yaml:"segments_file"`
	TickMs       int    `yaml:"tick_ms"`
	FrameMs      int    `yaml:"frame_ms"`
	HoldMs       int    `yaml:"hold_ms"`
	StartPaused  bool   `yaml:"start_paused"`
	TrackElapsed bool   `yaml:"track_elapsed"`
	Mute         bool   `yaml:"mute"`

	// Set tracking so a user file can override defaults with zero values.
	StartPausedSet  bool `yaml:"-"`
	TrackElapsedSet bool `yaml:"-"`
	MuteSet         bool `yaml:"-"`

	configDir string
	sources   []string
}

// Sources returns the ordered list of sources that contributed values.
func (c *Config) Sources() []string {
	return c.sources
}

// ConfigDir returns the user config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// TickInterval is the terminal shell poll cadence.
func (c *Config) TickInterval() time.Duration {
	if c.TickMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

// FrameInterval is the graphical shell redraw cadence.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.FrameMs) * time.Millisecond
}

// Hold is the completion flash window.
func (c *Config) Hold() time.Duration {
	if c.HoldMs <= 0 {
		return 600 * time.Millisecond
	}
	return time.Duration(c.HoldMs) * time.Millisecond
}

// Load loads configuration from the default user directory.
func Load() (*Config, error) {
	return LoadWithDir(DefaultConfigDir())
}

// Default returns the embedded default configuration, ignoring the
// user file and environment. Callers fall back to it when Load fails.
func Default() *Config {
	cfg, err := parseConfig(embeddedDefaults)
	if err != nil {
		// The embedded file is fixed at build time.
		panic(fmt.Sprintf("embedded config is invalid: %v", err))
	}
	cfg.sources = []string{"embedded"}
	cfg.configDir = DefaultConfigDir()
	return cfg
}

// LoadWithDir loads configuration with an explicit config directory.
// Missing files are not errors; the embedded defaults always apply.
func LoadWithDir(dir string) (*Config, error) {
	cfg, err := parseConfig(embeddedDefaults)
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	path := filepath.Join(dir, "config.yaml")
	if fileCfg, err := loadFile(path); err == nil {
		cfg.mergeFrom(fileCfg)
		cfg.sources = append(cfg.sources, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.applyEnv()
	cfg.configDir = dir
	return cfg, nil
}

// InstallDefaults creates the config directory and writes the default
// config file if it does not exist yet.
func InstallDefaults(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, embeddedDefaults, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}
	return nil
}

// DefaultConfigDir returns the user configuration directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "demotimer")
	}
	return filepath.Join(home, ".config", "demotimer")
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and records which boolean
// fields were explicitly set, so explicit false survives the merge.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["start_paused"]; ok {
		cfg.StartPausedSet = true
	}
	if _, ok := raw["track_elapsed"]; ok {
		cfg.TrackElapsedSet = true
	}
	if _, ok := raw["mute"]; ok {
		cfg.MuteSet = true
	}
	return cfg, nil
}

// applyEnv applies environment variables on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("DEMOTIMER_SEGMENTS_FILE"); v != "" {
		c.SegmentsFile = v
		c.sources = append(c.sources, "env:DEMOTIMER_SEGMENTS_FILE")
	}
	if v := os.Getenv("DEMOTIMER_TICK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TickMs = n
			c.sources = append(c.sources, "env:DEMOTIMER_TICK_MS")
		}
	}
	if v := os.Getenv("DEMOTIMER_HOLD_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HoldMs = n
			c.sources = append(c.sources, "env:DEMOTIMER_HOLD_MS")
		}
	}
	if v := os.Getenv("DEMOTIMER_START_PAUSED"); v != "" {
		c.StartPaused = v == "true" || v == "1"
		c.StartPausedSet = true
		c.sources = append(c.sources, "env:DEMOTIMER_START_PAUSED")
	}
	if v := os.Getenv("DEMOTIMER_MUTE"); v != "" {
		c.Mute = v == "true" || v == "1"
		c.MuteSet = true
		c.sources = append(c.sources, "env:DEMOTIMER_MUTE")
	}
}

// mergeFrom merges set/non-empty values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.SegmentsFile != "" {
		c.SegmentsFile = src.SegmentsFile
	}
	if src.TickMs > 0 {
		c.TickMs = src.TickMs
	}
	if src.FrameMs > 0 {
		c.FrameMs = src.FrameMs
	}
	if src.HoldMs > 0 {
		c.HoldMs = src.HoldMs
	}
	if src.StartPausedSet {
		c.StartPaused = src.StartPaused
		c.StartPausedSet = true
	}
	if src.TrackElapsedSet {
		c.TrackElapsed = src.TrackElapsed
		c.TrackElapsedSet = true
	}
	if src.MuteSet {
		c.Mute = src.Mute
		c.MuteSet = true
	}
}
