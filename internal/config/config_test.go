package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, DefaultHistoryCapacity, cfg.Editor.HistoryCapacity)
	assert.Equal(t, DefaultPageSize, cfg.Editor.PageSize)
	assert.Equal(t, cfg.Editor.WideAdvance/2, cfg.Editor.NarrowAdvance)
	assert.False(t, cfg.Editor.WrapEnabled)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse(`
[editor]
history_capacity = 500
wrap_enabled = true
viewport_width = 640.0
case_sensitive = true

[logger]
log_level = "debug"
enabled_tags = ["history", "find"]
`)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Editor.HistoryCapacity)
	assert.True(t, cfg.Editor.WrapEnabled)
	assert.Equal(t, 640.0, cfg.Editor.ViewportWidth)
	assert.True(t, cfg.Editor.CaseSensitive)
	assert.Equal(t, DefaultPageSize, cfg.Editor.PageSize)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"history", "find"}, cfg.Logger.EnabledTags)
}

func TestParseResetsInvalidValues(t *testing.T) {
	cfg, err := Parse(`
[editor]
history_capacity = -3
page_size = 0
viewport_width = -10.0
wrap_column = -1
wide_advance = 20.0
narrow_advance = 0.0

[logger]
log_level = ""
`)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryCapacity, cfg.Editor.HistoryCapacity)
	assert.Equal(t, DefaultPageSize, cfg.Editor.PageSize)
	assert.Equal(t, 0.0, cfg.Editor.ViewportWidth)
	assert.Equal(t, 0, cfg.Editor.WrapColumn)
	assert.Equal(t, 10.0, cfg.Editor.NarrowAdvance, "narrow falls back to half of wide")
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	_, err := Parse("[editor\nwrap_enabled = ")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nwrap_column = 80\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Editor.WrapColumn)
}

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}
