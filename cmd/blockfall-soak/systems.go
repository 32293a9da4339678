package main

import (
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// RestartOnGameOver restarts the session on the frame after a game over.
type RestartOnGameOver struct {
	pending bool
}

func (r *RestartOnGameOver) OnEvent(e tetris.Event) {
	if e.Type == tetris.EventGameOver {
		r.pending = true
	}
}

func (r *RestartOnGameOver) Execute(frame *engine.UpdateFrame) {
	if r.pending {
		frame.Commands.Restart()
		r.pending = false
	}
}

// InvariantChecker counts frames where the active piece leaves the board or
// overlaps a committed tile.
type InvariantChecker struct {
	Violations int
}

func (c *InvariantChecker) Gameplay() {}

func (c *InvariantChecker) Execute(frame *engine.UpdateFrame) {
	cells, _, ok := frame.Session.ActiveCells()
	if !ok {
		return
	}

	board := frame.Session.Board()
	if !board.IsValid(cells) {
		c.Violations++
	}
}
