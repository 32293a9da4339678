package engine

import "github.com/plus3/blockfall/tetris"

// Canvas is the display grid frontends draw from: committed tiles with the
// ghost and the active piece layered on top. It lives on its own board so
// the session board only ever holds locked tiles.
type Canvas struct {
	board    *tetris.Board
	revision uint64
	synced   bool

	overlay  bool
	ghost    [4]tetris.Cell
	active   [4]tetris.Cell
	gameOver bool
}

// NewCanvas creates a canvas sized to bounds.
func NewCanvas(bounds tetris.Bounds) (*Canvas, error) {
	board, err := tetris.NewBoard(bounds.Width(), bounds.Height())
	if err != nil {
		return nil, err
	}
	return &Canvas{board: board}, nil
}

// Compose refreshes the canvas from session. Committed tiles are copied only
// when the session board changed; otherwise just the previous overlay is
// erased and redrawn.
func (c *Canvas) Compose(session *tetris.Session) {
	source := session.Board()

	if !c.synced || source.Revision() != c.revision {
		c.board.CopyFrom(source)
		c.revision = source.Revision()
		c.synced = true
		c.overlay = false
	} else if c.overlay {
		c.board.Release(c.ghost)
		c.board.Release(c.active)
		c.overlay = false
	}

	c.gameOver = session.IsGameOver()

	active, tile, ok := session.ActiveCells()
	if !ok {
		return
	}
	ghost, _ := session.GhostCells()

	c.board.Commit(ghost, tetris.GhostTile)
	c.board.Commit(active, tile)
	c.ghost, c.active = ghost, active
	c.overlay = true
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() tetris.Bounds {
	return c.board.Bounds()
}

// TileAt returns what to draw at cell: a piece tile, GhostTile or Empty.
func (c *Canvas) TileAt(cell tetris.Cell) tetris.TileID {
	return c.board.TileAt(cell)
}

// Tiles lists every non-empty cell, bottom row first.
func (c *Canvas) Tiles() []tetris.Tile {
	return c.board.Occupied()
}

// Rows returns the grid top row first, for frontends that draw downward.
// Empty cells are tetris.Empty.
func (c *Canvas) Rows() [][]tetris.TileID {
	b := c.board.Bounds()
	rows := make([][]tetris.TileID, 0, b.Height())
	for y := b.YMax - 1; y >= b.YMin; y-- {
		row := make([]tetris.TileID, 0, b.Width())
		for x := b.XMin; x < b.XMax; x++ {
			row = append(row, c.board.TileAt(tetris.Cell{X: x, Y: y}))
		}
		rows = append(rows, row)
	}
	return rows
}

// GameOver reports whether the session was over at the last Compose.
func (c *Canvas) GameOver() bool {
	return c.gameOver
}
