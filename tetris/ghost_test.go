package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	t.Run("empty board lands on the floor", func(t *testing.T) {
		board := newTestBoard(t)
		piece := spawnPiece(t, board, tetris.O, tetris.Cell{X: -1, Y: 8})

		ghost := tetris.Project(board, piece)
		assert.Equal(t, tetris.Cell{X: -1, Y: -10}, ghost.Position)
		assert.Equal(t, piece.Cells(), ghost.Cells)
		assert.Equal(t, [4]tetris.Cell{{-1, -9}, {0, -9}, {-1, -10}, {0, -10}}, ghost.Absolute())
	})

	t.Run("lands on the first obstacle below", func(t *testing.T) {
		board := newTestBoard(t)
		board.Set(tetris.Cell{X: 0, Y: -5}, 3)
		board.Set(tetris.Cell{X: -1, Y: 5}, 3)
		piece := spawnPiece(t, board, tetris.O, tetris.Cell{X: -1, Y: 6})

		assert.Equal(t, tetris.Cell{X: -1, Y: 6}, tetris.Project(board, piece).Position)

		piece.TryMove(tetris.Right)
		piece.TryMove(tetris.Right)
		assert.Equal(t, tetris.Cell{X: 1, Y: -10}, tetris.Project(board, piece).Position)

		piece.TryMove(tetris.Left)
		assert.Equal(t, tetris.Cell{X: 0, Y: -4}, tetris.Project(board, piece).Position)
	})

	t.Run("projection matches a hard drop", func(t *testing.T) {
		board := newTestBoard(t)
		fillRow(board, -7, 1, 2, 3)
		for _, kind := range tetris.Kinds {
			piece := spawnPiece(t, board, kind, tetris.Cell{X: 2, Y: 4})
			ghost := tetris.Project(board, piece)
			piece.HardDrop()
			assert.Equal(t, piece.Position(), ghost.Position, kind.String())
		}
	})

	t.Run("board is untouched", func(t *testing.T) {
		board := newTestBoard(t)
		board.Set(tetris.Cell{X: 3, Y: -10}, 4)
		piece := spawnPiece(t, board, tetris.T, tetris.Cell{X: 0, Y: 5})
		rev, n := board.Revision(), board.Len()

		tetris.Project(board, piece)
		assert.Equal(t, rev, board.Revision())
		assert.Equal(t, n, board.Len())
	})
}
