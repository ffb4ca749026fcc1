package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithDirDefaults(t *testing.T) {
	cfg, err := LoadWithDir(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 100*time.Millisecond, cfg.TickInterval())
	require.Equal(t, 16*time.Millisecond, cfg.FrameInterval())
	require.Equal(t, 600*time.Millisecond, cfg.Hold())
	require.False(t, cfg.StartPaused)
	require.True(t, cfg.TrackElapsed)
	require.False(t, cfg.Mute)
	require.Equal(t, []string{"embedded"}, cfg.Sources())
}

func TestLoadWithDirMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	content := "tick_ms: 250\nhold_ms: 1000\nmute: true\ntrack_elapsed: false\nsegments_file: /tmp/talk.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadWithDir(dir)
	require.NoError(t, err)

	require.Equal(t, 250*time.Millisecond, cfg.TickInterval())
	require.Equal(t, time.Second, cfg.Hold())
	require.True(t, cfg.Mute)
	require.False(t, cfg.TrackElapsed, "explicit false must override the default true")
	require.Equal(t, "/tmp/talk.txt", cfg.SegmentsFile)
	require.Len(t, cfg.Sources(), 2)
}

func TestLoadWithDirAppliesEnv(t *testing.T) {
	t.Setenv("DEMOTIMER_SEGMENTS_FILE", "/tmp/env.txt")
	t.Setenv("DEMOTIMER_TICK_MS", "50")
	t.Setenv("DEMOTIMER_START_PAUSED", "1")

	cfg, err := LoadWithDir(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "/tmp/env.txt", cfg.SegmentsFile)
	require.Equal(t, 50*time.Millisecond, cfg.TickInterval())
	require.True(t, cfg.StartPaused)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 100*time.Millisecond, cfg.TickInterval())
	require.True(t, cfg.TrackElapsed)
	require.Equal(t, []string{"embedded"}, cfg.Sources())
}

func TestLoadWithDirRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tick_ms: [nope"), 0o600))

	_, err := LoadWithDir(dir)
	require.Error(t, err)
}

func TestInstallDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demotimer")

	require.NoError(t, InstallDefaults(dir))
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Second install keeps the existing file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tick_ms: 42\n"), 0o600))
	require.NoError(t, InstallDefaults(dir))
	data, err = os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "tick_ms: 42\n", string(data))
}
