package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "split", cfg.Layout)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 300*time.Millisecond, cfg.HoverHideDelay())
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "comments.json"), cfg.CommentStorePath())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
layout: unified
theme: gruvbox
hover_hide_delay_ms: 150
exclude:
  - "**/*.lock"
  - "vendor/**"
log:
  level: debug
  file: /tmp/diffview.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, "unified", cfg.Layout)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 150*time.Millisecond, cfg.HoverHideDelay())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data", cfg.DataDir, "dataDir comes from the caller, not the file")

	assert.True(t, cfg.Excluded("pkg/go.lock"))
	assert.True(t, cfg.Excluded("vendor/lib/a.go"))
	assert.False(t, cfg.Excluded("internal/core/a.go"))
}

func TestLoad_InvalidLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("layout: diagonal"), 0o644))

	_, err := Load(path, "/data")
	assert.ErrorContains(t, err, "invalid layout")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.HoverHideDelayMS = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Exclude = []string{"[unclosed"}
	assert.Error(t, cfg.Validate())
}
