package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func configureBuffer(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(cfg, &buf)
	t.Cleanup(func() { Configure(NewConfig(), nil) })
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := configureBuffer(t, Config{LogLevel: "warn"})

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)

	assert.NotContains(t, buf.String(), "quiet 1")
	assert.Contains(t, buf.String(), "loud 2")
}

func TestDebugTagfAttachesTag(t *testing.T) {
	buf := configureBuffer(t, Config{LogLevel: "debug"})

	DebugTagf("history", "pushed %s", "insert")

	out := buf.String()
	assert.Contains(t, out, "pushed insert")
	assert.Contains(t, out, "tag=history")
	assert.Contains(t, out, "logger_test.go")
}

func TestTagFilters(t *testing.T) {
	buf := configureBuffer(t, Config{
		LogLevel:     "debug",
		EnabledTags:  []string{"Find", "cursor"},
		DisabledTags: []string{"cursor"},
	})

	DebugTagf("find", "kept")
	DebugTagf("cursor", "disabled wins")
	DebugTagf("wrap", "not enabled")
	Debugf("untagged")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "disabled wins")
	assert.NotContains(t, out, "not enabled")
	assert.NotContains(t, out, "untagged")
}

func TestPackageFilter(t *testing.T) {
	buf := configureBuffer(t, Config{LogLevel: "debug", DisabledPackages: []string{"logger"}})

	Infof("from the logger package")

	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestSetLevel(t *testing.T) {
	buf := configureBuffer(t, Config{LogLevel: "error"})
	Infof("before")
	SetLevel(slog.LevelInfo)
	Infof("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}
