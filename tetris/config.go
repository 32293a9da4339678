package tetris

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var (
	// ErrSpawnOutOfBounds is returned when the spawn anchor is outside the board.
	ErrSpawnOutOfBounds = errors.New("spawn anchor outside board")
	// ErrInvalidDelay is returned for a negative delay or a non-positive step delay.
	ErrInvalidDelay = errors.New("invalid delay")
	// ErrNilRandomizer is returned when no randomizer is configured.
	ErrNilRandomizer = errors.New("nil randomizer")
)

// Config is fixed when a session is created.
type Config struct {
	Width  int
	Height int
	// Spawn is the anchor every new piece starts at.
	Spawn Cell

	// FreeStepDelay, ControlledStepDelay and LockDelay are in seconds.
	FreeStepDelay       float64
	ControlledStepDelay float64
	LockDelay           float64

	Catalog    *Catalog
	Randomizer Randomizer

	// Logger receives lifecycle messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the standard 10x20 rules with a uniform randomizer
// seeded from the global source.
func DefaultConfig() Config {
	return Config{
		Width:               10,
		Height:              20,
		Spawn:               Cell{X: -1, Y: 8},
		FreeStepDelay:       1,
		ControlledStepDelay: 0.5,
		LockDelay:           0.5,
		Catalog:             DefaultCatalog(),
		Randomizer:          NewUniformRandomizer(rand.Uint64()),
	}
}

// Delays returns the timing thresholds of the configuration.
func (c Config) Delays() Delays {
	return Delays{
		FreeStep:       c.FreeStepDelay,
		ControlledStep: c.ControlledStepDelay,
		Lock:           c.LockDelay,
	}
}

// Validate checks the configuration for values that would break play.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}

	xMin, yMin := -c.Width/2, -c.Height/2
	bounds := Bounds{XMin: xMin, YMin: yMin, XMax: xMin + c.Width, YMax: yMin + c.Height}
	if !bounds.Contains(c.Spawn) {
		return fmt.Errorf("%w: %s not in %dx%d board", ErrSpawnOutOfBounds, c.Spawn, c.Width, c.Height)
	}

	if c.FreeStepDelay <= 0 {
		return fmt.Errorf("%w: free step delay %v must be positive", ErrInvalidDelay, c.FreeStepDelay)
	}
	if c.ControlledStepDelay < 0 {
		return fmt.Errorf("%w: controlled step delay %v is negative", ErrInvalidDelay, c.ControlledStepDelay)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("%w: lock delay %v is negative", ErrInvalidDelay, c.LockDelay)
	}

	if c.Catalog == nil {
		return fmt.Errorf("%w: nil catalog", ErrMalformedCatalog)
	}
	if c.Randomizer == nil {
		return ErrNilRandomizer
	}

	for _, kind := range Kinds {
		for _, cell := range c.Catalog.Cells(kind) {
			if !bounds.Contains(cell.Add(c.Spawn)) {
				return fmt.Errorf("%w: %s piece at %s leaves the board", ErrSpawnOutOfBounds, kind, c.Spawn)
			}
		}
	}

	return nil
}
