package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var s Stats
		s.Finalize()
		assert.Zero(t, s.Avg)
	})

	t.Run("samples", func(t *testing.T) {
		s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
		s.Finalize()
		assert.Equal(t, time.Millisecond, s.Min)
		assert.Equal(t, 3*time.Millisecond, s.Max)
		assert.Equal(t, 2*time.Millisecond, s.Avg)
	})
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		FrameLimit:   600,
		Seed:         7,
		Randomizer:   "bag",
		TotalUpdates: 600,
		Events: map[tetris.EventType]int{
			tetris.EventLocked:       40,
			tetris.EventLinesCleared: 10,
		},
		Systems: []engine.SystemStats{{Name: "SessionSystem", ExecutionCount: 600}},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "600 frames")
	assert.Contains(t, out, "- Locked: 40")
	assert.Contains(t, out, "- LinesCleared: 10")
	assert.Contains(t, out, "**Line Clear Events Per Piece:** 0.250")
	assert.Contains(t, out, "- SessionSystem: runs 600")
	assert.NotContains(t, out, "GC Pause")
}

// The soak loop itself: a seeded bot must never leave the active piece in an
// invalid position, across restarts.
func TestSoakKeepsInvariants(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Randomizer = tetris.NewBagRandomizer(3)
	session, err := tetris.NewSession(cfg)
	require.NoError(t, err)

	counter := engine.NewEventCounter()
	checker := &InvariantChecker{}
	restarts := &RestartOnGameOver{}

	scheduler := engine.NewScheduler(session)
	scheduler.Register(restarts)
	scheduler.Register(&engine.InputSystem{Source: engine.NewRandomInput(3, 0.9)})
	scheduler.Register(&engine.SessionSystem{})
	scheduler.Register(checker)
	scheduler.Register(&engine.EventSystem{Listeners: []engine.EventListener{counter, restarts}})

	for range 20000 {
		scheduler.Once(1.0 / 60)
	}

	assert.Zero(t, checker.Violations)
	assert.Positive(t, counter.Counts[tetris.EventLocked])
	// a restart lands up to two frames after its game over
	gameOvers, restarted := counter.Counts[tetris.EventGameOver], counter.Counts[tetris.EventRestarted]
	assert.LessOrEqual(t, restarted, gameOvers)
	assert.GreaterOrEqual(t, restarted, gameOvers-1)
}
