// Package config loads blockfall settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/plus3/blockfall/tetris"
)

var (
	// ErrUnknownRandomizer is returned for a randomizer mode other than uniform or bag.
	ErrUnknownRandomizer = errors.New("unknown randomizer mode")
	// ErrInvalidSpawn is returned when the spawn anchor is not "x,y".
	ErrInvalidSpawn = errors.New("invalid spawn anchor")
	// ErrInvalidFrameRate is returned for a frame rate outside [1, MaxFrameRate].
	ErrInvalidFrameRate = errors.New("invalid frame rate")
)

// MaxFrameRate is the highest accepted frames-per-second setting.
const MaxFrameRate = 1000

// Settings is the full runtime configuration. Zero values read from a file
// fall back to the env-default tags, so numeric options cannot be set to zero.
type Settings struct {
	LogLevel   string     `yaml:"log-level" env:"BLOCKFALL_LOG_LEVEL" env-default:"info"`
	FrameRate  int        `yaml:"frame-rate" env:"BLOCKFALL_FRAME_RATE" env-default:"60"`
	Mute       bool       `yaml:"mute" env:"BLOCKFALL_MUTE"`
	Board      Board      `yaml:"board"`
	Timing     Timing     `yaml:"timing"`
	Randomizer Randomizer `yaml:"randomizer"`
}

type Board struct {
	Width  int `yaml:"width" env:"BLOCKFALL_BOARD_WIDTH" env-default:"10"`
	Height int `yaml:"height" env:"BLOCKFALL_BOARD_HEIGHT" env-default:"20"`
	// Spawn is the anchor of new pieces as "x,y".
	Spawn string `yaml:"spawn" env:"BLOCKFALL_SPAWN" env-default:"-1,8"`
}

// Timing holds the piece delays in seconds.
type Timing struct {
	FreeStep       float64 `yaml:"free-step" env:"BLOCKFALL_FREE_STEP" env-default:"1"`
	ControlledStep float64 `yaml:"controlled-step" env:"BLOCKFALL_CONTROLLED_STEP" env-default:"0.5"`
	Lock           float64 `yaml:"lock" env:"BLOCKFALL_LOCK_DELAY" env-default:"0.5"`
}

type Randomizer struct {
	// Mode is "uniform" or "bag".
	Mode string `yaml:"mode" env:"BLOCKFALL_RANDOMIZER" env-default:"uniform"`
	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed" env:"BLOCKFALL_SEED" env-default:"0"`
}

// Load reads settings from the YAML file at path with environment overrides.
// An empty path reads only the environment.
func Load(path string) (*Settings, error) {
	settings := &Settings{}

	if path == "" {
		if err := cleanenv.ReadEnv(settings); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, settings); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings the frontends use directly. Session options
// are checked later by tetris.NewSession.
func (s *Settings) Validate() error {
	if s.FrameRate < 1 || s.FrameRate > MaxFrameRate {
		return fmt.Errorf("%w: %d", ErrInvalidFrameRate, s.FrameRate)
	}
	return nil
}

// FrameInterval is the wall-clock duration of one frame.
func (s *Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Settings {
	settings, err := Load(path)
	if err != nil {
		panic(err)
	}
	return settings
}

// SpawnCell parses the spawn anchor.
func (b Board) SpawnCell() (tetris.Cell, error) {
	var c tetris.Cell
	if _, err := fmt.Sscanf(strings.ReplaceAll(b.Spawn, " ", ""), "%d,%d", &c.X, &c.Y); err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidSpawn, b.Spawn)
	}
	return c, nil
}

// Level maps LogLevel onto a slog level. Unknown names mean info.
func (s *Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text logger writing to w at the configured level.
func (s *Settings) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.Level()}))
}

// NewRandomizer builds the configured piece randomizer.
func (s *Settings) NewRandomizer() (tetris.Randomizer, error) {
	seed := s.Randomizer.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	switch strings.ToLower(s.Randomizer.Mode) {
	case "", "uniform":
		return tetris.NewUniformRandomizer(seed), nil
	case "bag":
		return tetris.NewBagRandomizer(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRandomizer, s.Randomizer.Mode)
	}
}

// SessionConfig converts the settings into a session configuration using the
// standard catalog. The result is validated by tetris.NewSession.
func (s *Settings) SessionConfig(logger *slog.Logger) (tetris.Config, error) {
	spawn, err := s.Board.SpawnCell()
	if err != nil {
		return tetris.Config{}, err
	}

	randomizer, err := s.NewRandomizer()
	if err != nil {
		return tetris.Config{}, err
	}

	return tetris.Config{
		Width:               s.Board.Width,
		Height:              s.Board.Height,
		Spawn:               spawn,
		FreeStepDelay:       s.Timing.FreeStep,
		ControlledStepDelay: s.Timing.ControlledStep,
		LockDelay:           s.Timing.Lock,
		Catalog:             tetris.DefaultCatalog(),
		Randomizer:          randomizer,
		Logger:              logger,
	}, nil
}
