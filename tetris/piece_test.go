package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDelays = tetris.Delays{FreeStep: 1, ControlledStep: 0.5, Lock: 0.5}

func spawnPiece(t *testing.T, board *tetris.Board, kind tetris.Kind, at tetris.Cell) *tetris.Piece {
	t.Helper()
	piece := tetris.NewPiece(board, tetris.DefaultCatalog(), testDelays)
	require.True(t, piece.Spawn(kind, at))
	return piece
}

func TestPieceSpawn(t *testing.T) {
	board := newTestBoard(t)
	piece := spawnPiece(t, board, tetris.O, tetris.Cell{X: -1, Y: 8})

	assert.Equal(t, tetris.O, piece.Kind())
	assert.Equal(t, 0, piece.Rotation())
	assert.Equal(t, tetris.TileID(2), piece.Tile())
	assert.Equal(t, [4]tetris.Cell{{-1, 9}, {0, 9}, {-1, 8}, {0, 8}}, piece.Absolute())
	assert.Equal(t, 0, board.Len(), "active piece is not written to the board")

	t.Run("blocked spawn", func(t *testing.T) {
		board.Set(tetris.Cell{X: 0, Y: 9}, 1)
		assert.False(t, piece.Spawn(tetris.O, tetris.Cell{X: -1, Y: 8}))
	})

	t.Run("out of bounds spawn", func(t *testing.T) {
		assert.False(t, piece.Spawn(tetris.I, tetris.Cell{X: -1, Y: 9}))
	})
}

func TestPieceMovement(t *testing.T) {
	board := newTestBoard(t)
	piece := spawnPiece(t, board, tetris.O, tetris.Cell{X: -1, Y: 8})

	t.Run("walls stop translation", func(t *testing.T) {
		moves := 0
		for piece.TryMove(tetris.Left) {
			moves++
		}
		assert.Equal(t, 4, moves)
		assert.Equal(t, tetris.Cell{X: -5, Y: 8}, piece.Position())

		moves = 0
		for piece.TryMove(tetris.Right) {
			moves++
		}
		assert.Equal(t, 8, moves)
		assert.Equal(t, tetris.Cell{X: 3, Y: 8}, piece.Position())
	})

	t.Run("hard drop rests on the floor", func(t *testing.T) {
		require.True(t, piece.Spawn(tetris.O, tetris.Cell{X: -1, Y: 8}))
		assert.Equal(t, 18, piece.HardDrop())
		assert.Equal(t, tetris.Cell{X: -1, Y: -10}, piece.Position())
		assert.True(t, piece.Grounded())
		assert.False(t, piece.TryMove(tetris.Down))
	})

	t.Run("hard drop rests on the stack", func(t *testing.T) {
		board.Set(tetris.Cell{X: 0, Y: -3}, 5)
		require.True(t, piece.Spawn(tetris.O, tetris.Cell{X: -1, Y: 8}))
		assert.Equal(t, 10, piece.HardDrop())
		assert.Equal(t, tetris.Cell{X: -1, Y: -2}, piece.Position())
	})
}

func TestPieceTimers(t *testing.T) {
	board := newTestBoard(t)
	piece := spawnPiece(t, board, tetris.T, tetris.Cell{X: 0, Y: 0})

	t.Run("first controlled move waits for the delay", func(t *testing.T) {
		ready, moved := piece.Controlled(tetris.Left)
		assert.False(t, ready)
		assert.False(t, moved)

		piece.Advance(0.25)
		ready, _ = piece.Controlled(tetris.Left)
		assert.False(t, ready)

		piece.Advance(0.25)
		ready, moved = piece.Controlled(tetris.Left)
		assert.True(t, ready)
		assert.True(t, moved)
		assert.Equal(t, tetris.Cell{X: -1, Y: 0}, piece.Position())

		ready, moved = piece.Controlled(tetris.Left)
		assert.False(t, ready)
		assert.False(t, moved)

		piece.Advance(0.5)
		ready, moved = piece.Controlled(tetris.Right)
		assert.True(t, ready)
		assert.True(t, moved)
	})

	t.Run("spawn resets the controlled timer", func(t *testing.T) {
		piece.Advance(0.5)
		require.True(t, piece.Spawn(tetris.T, tetris.Cell{X: 0, Y: 0}))
		assert.Zero(t, piece.State().SinceControl)

		ready, _ := piece.Controlled(tetris.Right)
		assert.False(t, ready)
	})

	t.Run("gravity", func(t *testing.T) {
		require.True(t, piece.Spawn(tetris.T, tetris.Cell{X: 0, Y: 0}))
		piece.Advance(0.5)
		assert.False(t, piece.StepDue())
		piece.Advance(0.5)
		require.True(t, piece.StepDue())
		assert.False(t, piece.Step())
		assert.Equal(t, tetris.Cell{X: 0, Y: -1}, piece.Position())
		assert.False(t, piece.StepDue())
	})

	t.Run("lock time only accumulates while grounded", func(t *testing.T) {
		require.True(t, piece.Spawn(tetris.T, tetris.Cell{X: 0, Y: 0}))
		piece.Advance(0.3)
		assert.Zero(t, piece.LockTime())

		piece.HardDrop()
		piece.Advance(0.3)
		assert.InDelta(t, 0.3, piece.LockTime(), 1e-9)
		assert.False(t, piece.Step())

		piece.Advance(0.3)
		assert.True(t, piece.Step())
	})
}

func TestPieceRotation(t *testing.T) {
	t.Run("I rotates about a cell corner", func(t *testing.T) {
		piece := spawnPiece(t, newTestBoard(t), tetris.I, tetris.Cell{})
		require.True(t, piece.Rotate(1))
		assert.Equal(t, 1, piece.Rotation())
		assert.Equal(t, [4]tetris.Cell{{1, 2}, {1, 1}, {1, 0}, {1, -1}}, piece.Cells())
		assert.Equal(t, tetris.Cell{}, piece.Position())
	})

	t.Run("T rotates about its center cell", func(t *testing.T) {
		piece := spawnPiece(t, newTestBoard(t), tetris.T, tetris.Cell{})
		original := piece.Cells()

		require.True(t, piece.Rotate(1))
		assert.Equal(t, [4]tetris.Cell{{1, 0}, {0, 1}, {0, 0}, {0, -1}}, piece.Cells())

		require.True(t, piece.Rotate(-1))
		assert.Equal(t, original, piece.Cells())
		assert.Equal(t, 0, piece.Rotation())
	})

	t.Run("O keeps its footprint", func(t *testing.T) {
		piece := spawnPiece(t, newTestBoard(t), tetris.O, tetris.Cell{})
		before := piece.Absolute()

		require.True(t, piece.Rotate(1))
		assert.Equal(t, [4]tetris.Cell{{1, 1}, {1, 0}, {0, 1}, {0, 0}}, piece.Cells())
		assert.ElementsMatch(t, before[:], absolute(piece))
	})

	t.Run("four turns return to the start", func(t *testing.T) {
		for _, kind := range tetris.Kinds {
			piece := spawnPiece(t, newTestBoard(t), kind, tetris.Cell{})
			original := piece.Cells()
			for range 4 {
				require.True(t, piece.Rotate(1), kind.String())
			}
			assert.Equal(t, original, piece.Cells(), kind.String())
			assert.Equal(t, 0, piece.Rotation(), kind.String())
		}
	})

	t.Run("wall kick off the left wall", func(t *testing.T) {
		piece := spawnPiece(t, newTestBoard(t), tetris.I, tetris.Cell{})
		require.True(t, piece.Rotate(1))
		for piece.TryMove(tetris.Left) {
		}
		require.Equal(t, tetris.Cell{X: -6, Y: 0}, piece.Position())

		require.True(t, piece.Rotate(-1))
		assert.Equal(t, 0, piece.Rotation())
		assert.Equal(t, tetris.Cell{X: -4, Y: 0}, piece.Position())
	})

	t.Run("failed rotation restores the piece", func(t *testing.T) {
		board := newTestBoard(t)
		own := [4]tetris.Cell{{0, 1}, {-1, 0}, {0, 0}, {1, 0}}
		bounds := board.Bounds()
		for y := bounds.YMin; y < bounds.YMax; y++ {
			for x := bounds.XMin; x < bounds.XMax; x++ {
				c := tetris.Cell{X: x, Y: y}
				if c != own[0] && c != own[1] && c != own[2] && c != own[3] {
					board.Set(c, 1)
				}
			}
		}

		piece := spawnPiece(t, board, tetris.T, tetris.Cell{})
		before := piece.State()

		assert.False(t, piece.Rotate(1))
		assert.False(t, piece.Rotate(-1))
		assert.Equal(t, before, piece.State())
	})

	t.Run("zero direction is ignored", func(t *testing.T) {
		piece := spawnPiece(t, newTestBoard(t), tetris.L, tetris.Cell{})
		assert.False(t, piece.Rotate(0))
		assert.Equal(t, 0, piece.Rotation())
	})
}

func absolute(p *tetris.Piece) []tetris.Cell {
	cells := p.Absolute()
	return cells[:]
}
