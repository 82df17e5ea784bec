// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidecore/internal/logger"
)

// Config holds the engine's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor"` // [editor] table
}

// EditorConfig holds editing session settings.
type EditorConfig struct {
	HistoryCapacity int     `toml:"history_capacity"`
	WrapEnabled     bool    `toml:"wrap_enabled"`
	ViewportWidth   float64 `toml:"viewport_width"` // Advance units; 0 until the host reports a size
	WrapColumn      int     `toml:"wrap_column"`    // Overrides ViewportWidth when > 0
	CaseSensitive   bool    `toml:"case_sensitive"`
	PageSize        int     `toml:"page_size"` // Lines moved by page up/down
	NarrowAdvance   float64 `toml:"narrow_advance"`
	WideAdvance     float64 `toml:"wide_advance"`
	SystemClipboard bool    `toml:"system_clipboard"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			HistoryCapacity: DefaultHistoryCapacity,
			PageSize:        DefaultPageSize,
			NarrowAdvance:   DefaultNarrowAdvance,
			WideAdvance:     DefaultWideAdvance,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName), nil
}

// Parse decodes TOML over the defaults. Keys absent from data keep their
// default values; invalid values are reset.
func Parse(data string) (*Config, error) {
	cfg := NewDefaultConfig()
	metadata, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config: unrecognized keys: %v", undecoded)
	}
	cfg.validate()
	return cfg, nil
}

// LoadFile reads a TOML file over the defaults. A missing file is not an
// error and yields the defaults.
func LoadFile(filePath string) (*Config, error) {
	cfg := NewDefaultConfig()
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("Config file not found: %s", filePath)
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	cfg.validate()
	logger.Infof("Loaded configuration from: %s", filePath)
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	e := &c.Editor
	if e.HistoryCapacity <= 0 {
		logger.Warnf("Config: history_capacity %d invalid, using %d", e.HistoryCapacity, defaults.Editor.HistoryCapacity)
		e.HistoryCapacity = defaults.Editor.HistoryCapacity
	}
	if e.PageSize <= 0 {
		e.PageSize = defaults.Editor.PageSize
	}
	if e.ViewportWidth < 0 {
		e.ViewportWidth = 0
	}
	if e.WrapColumn < 0 {
		e.WrapColumn = 0
	}
	if e.WideAdvance <= 0 {
		e.WideAdvance = defaults.Editor.WideAdvance
	}
	if e.NarrowAdvance <= 0 {
		e.NarrowAdvance = e.WideAdvance / 2
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}
