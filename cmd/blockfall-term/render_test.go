package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

func TestRenderer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)

	cfg := tetris.DefaultConfig()
	cfg.Randomizer = tetris.NewSequenceRandomizer(tetris.O)
	session, err := tetris.NewSession(cfg)
	require.NoError(t, err)

	canvas, err := engine.NewCanvas(session.Board().Bounds())
	require.NoError(t, err)

	scheduler := engine.NewScheduler(session)
	scheduler.Register(&engine.OverlaySystem{Canvas: canvas})
	scheduler.Register(&Renderer{Screen: screen, Canvas: canvas})
	scheduler.Once(0)

	glyph := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}

	// top row: O piece in columns 4 and 5
	assert.Equal(t, '█', glyph(boardX+1+4*2, boardY+1))
	assert.Equal(t, '█', glyph(boardX+1+5*2+1, boardY+1))
	assert.Equal(t, '.', glyph(boardX+1+1, boardY+1))

	// bottom row: ghost
	assert.Equal(t, '░', glyph(boardX+1+4*2, boardY+20))

	assert.Equal(t, '│', glyph(boardX, boardY+1))
	assert.Equal(t, 'L', glyph(boardX+20+5, boardY+1))
}

func TestCommandForRune(t *testing.T) {
	tests := []struct {
		r    rune
		cmd  tetris.Command
		want bool
	}{
		{'a', tetris.MoveLeft, true},
		{'D', tetris.MoveRight, true},
		{'s', tetris.SoftDrop, true},
		{' ', tetris.HardDrop, true},
		{'q', tetris.RotateCCW, true},
		{'e', tetris.RotateCW, true},
		{'v', tetris.Hold, true},
		{'x', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			cmd, ok := commandForRune(tt.r)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.cmd, cmd)
			}
		})
	}
}
