package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	settings, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, 60, settings.FrameRate)
	assert.False(t, settings.Mute)
	assert.Equal(t, config.Board{Width: 10, Height: 20, Spawn: "-1,8"}, settings.Board)
	assert.Equal(t, config.Timing{FreeStep: 1, ControlledStep: 0.5, Lock: 0.5}, settings.Timing)
	assert.Equal(t, "uniform", settings.Randomizer.Mode)

	cfg, err := settings.SessionConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, tetris.Cell{X: -1, Y: 8}, cfg.Spawn)
	assert.Equal(t, tetris.DefaultConfig().Delays(), cfg.Delays())
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
frame-rate: 30
mute: true
board:
  width: 12
  height: 24
  spawn: "0, 10"
timing:
  free-step: 0.8
  lock: 0.25
randomizer:
  mode: bag
  seed: 99
`)

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, settings.Level())
	assert.Equal(t, 30, settings.FrameRate)
	assert.True(t, settings.Mute)
	assert.Equal(t, 12, settings.Board.Width)
	assert.InDelta(t, 0.8, settings.Timing.FreeStep, 1e-9)
	assert.InDelta(t, 0.5, settings.Timing.ControlledStep, 1e-9, "unset keys keep their default")
	assert.InDelta(t, 0.25, settings.Timing.Lock, 1e-9)

	cfg, err := settings.SessionConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, tetris.Cell{X: 0, Y: 10}, cfg.Spawn)
	assert.IsType(t, &tetris.BagRandomizer{}, cfg.Randomizer)

	_, err = tetris.NewSession(cfg)
	assert.NoError(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BLOCKFALL_BOARD_WIDTH", "8")
	t.Setenv("BLOCKFALL_RANDOMIZER", "bag")
	t.Setenv("BLOCKFALL_SEED", "5")

	settings, err := config.Load(writeConfig(t, "board:\n  width: 14\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, settings.Board.Width)
	assert.Equal(t, "bag", settings.Randomizer.Mode)

	a, err := settings.NewRandomizer()
	require.NoError(t, err)
	b, err := settings.NewRandomizer()
	require.NoError(t, err)
	for range 14 {
		assert.Equal(t, a.Next(), b.Next(), "fixed seed is reproducible")
	}
}

func TestSessionConfigErrors(t *testing.T) {
	settings, err := config.Load("")
	require.NoError(t, err)

	settings.Randomizer.Mode = "lucky"
	_, err = settings.SessionConfig(nil)
	assert.ErrorIs(t, err, config.ErrUnknownRandomizer)

	settings.Randomizer.Mode = "uniform"
	settings.Board.Spawn = "middle"
	_, err = settings.SessionConfig(nil)
	assert.ErrorIs(t, err, config.ErrInvalidSpawn)
}

func TestLoadFrameRate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"default", "", true},
		{"upper bound", "1000", true},
		{"negative", "-5", false},
		{"above bound", "2000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("BLOCKFALL_FRAME_RATE", tt.value)
			}

			settings, err := config.Load("")
			if !tt.valid {
				assert.ErrorIs(t, err, config.ErrInvalidFrameRate)
				assert.Nil(t, settings)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, settings.FrameInterval())
		})
	}

	t.Run("from file", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "frame-rate: -1\n"))
		assert.ErrorIs(t, err, config.ErrInvalidFrameRate)
		assert.Panics(t, func() { config.MustLoad(writeConfig(t, "frame-rate: -1\n")) })
	})

	t.Run("interval", func(t *testing.T) {
		settings := &config.Settings{FrameRate: 50}
		require.NoError(t, settings.Validate())
		assert.Equal(t, 20*time.Millisecond, settings.FrameInterval())
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
	assert.Panics(t, func() { config.MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	settings := &config.Settings{LogLevel: "warn"}
	logger := settings.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=test")
}
