package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Decode(New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 60, cfg.Window.FPS)
	assert.Equal(t, "auto", cfg.Device.Compact)
	assert.Equal(t, 768, cfg.Device.CompactMaxWidth)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.DoorDuration)
	assert.Equal(t, 380*time.Millisecond, cfg.Effects.LightDelay)
	assert.Equal(t, 350*time.Millisecond, cfg.Effects.EngineDelay)
	assert.InDelta(t, 0.3, cfg.Effects.ShakeStrength, 1e-6)
	assert.Equal(t, "raylib", cfg.Audio.Backend)
	assert.True(t, cfg.Scene.Grid)

	_, ok := cfg.CompactOverride()
	assert.False(t, ok)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logLevel: debug
window:
  width: 800
device:
  compact: "true"
animation:
  doorDuration: 1s
`), 0o644))

	t.Setenv("SHOWROOM_WINDOW_WIDTH", "1024")

	_, cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.Window.Width, "env beats the file")
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, time.Second, cfg.Animation.DoorDuration)

	compact, ok := cfg.CompactOverride()
	assert.True(t, ok)
	assert.True(t, compact)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOWROOM_LOGLEVEL=warn\nSHOWROOM_AUDIO_BACKEND=none\n"), 0o644))

	// Registered with t.Setenv so the test restores them.
	t.Setenv("SHOWROOM_LOGLEVEL", "error")
	t.Setenv("SHOWROOM_AUDIO_BACKEND", "")
	require.NoError(t, os.Unsetenv("SHOWROOM_AUDIO_BACKEND"))

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "error", os.Getenv("SHOWROOM_LOGLEVEL"), "existing variables win")
	assert.Equal(t, "none", os.Getenv("SHOWROOM_AUDIO_BACKEND"))

	require.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("SHOWROOM_LOGLEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("manifest", "", "")
	require.NoError(t, fs.Parse([]string{"--log-level", "debug"}))

	_, cfg, err := Load("", map[string]*pflag.Flag{
		"logLevel":       fs.Lookup("log-level"),
		"scene.manifest": fs.Lookup("manifest"),
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "", cfg.Scene.Manifest, "unset flag leaves the default")
}
