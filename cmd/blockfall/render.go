package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

const (
	CellSize = 28
	OffsetX  = 40
	OffsetY  = 40
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	gridColor       = color.RGBA{40, 40, 52, 255}
	borderColor     = color.RGBA{130, 130, 130, 255}
)

// drawBoard paints the canvas with its top row at OffsetY.
func drawBoard(screen *ebiten.Image, canvas *engine.Canvas) {
	screen.Fill(backgroundColor)

	bounds := canvas.Bounds()
	width := float32(bounds.Width() * CellSize)
	height := float32(bounds.Height() * CellSize)
	vector.StrokeRect(screen, OffsetX-2, OffsetY-2, width+4, height+4, 2, borderColor, false)

	for row, tiles := range canvas.Rows() {
		for col, id := range tiles {
			x := float32(OffsetX + col*CellSize)
			y := float32(OffsetY + row*CellSize)

			if id == tetris.Empty {
				vector.StrokeRect(screen, x, y, CellSize, CellSize, 1, gridColor, false)
				continue
			}
			vector.DrawFilledRect(screen, x, y, CellSize, CellSize, engine.TileColor(id), false)
			if id != tetris.GhostTile {
				vector.StrokeRect(screen, x, y, CellSize, CellSize, 1, color.Black, false)
			}
		}
	}
}

// drawHUD prints the session counters beside the board.
func drawHUD(screen *ebiten.Image, session *tetris.Session, paused bool) {
	bounds := session.Board().Bounds()
	x := OffsetX + bounds.Width()*CellSize + 24
	y := OffsetY

	stats := session.Stats()
	held := "-"
	if kind, ok := session.HeldKind(); ok {
		held = kind.String()
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES  %d", stats.Lines), x, y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PIECES %d", stats.Locked), x, y+20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HOLD   %s", held), x, y+40)
	ebitenutil.DebugPrintAt(screen, "A/D move  S drop  SPACE hard drop", x, y+80)
	ebitenutil.DebugPrintAt(screen, "Q/E rotate  V hold  F1 debug", x, y+100)

	if paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", x, y+140)
	}
	if session.IsGameOver() {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", x, y+160)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", x, y+180)
	}
}
