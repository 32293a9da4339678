package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

const (
	boardX = 2
	boardY = 1
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	emptyStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer draws the canvas two columns per cell and a side panel.
type Renderer struct {
	Screen tcell.Screen
	Canvas *engine.Canvas
}

func (r *Renderer) Execute(frame *engine.UpdateFrame) {
	r.Screen.Clear()

	rows := r.Canvas.Rows()
	width := r.Canvas.Bounds().Width()

	for y, tiles := range rows {
		sy := boardY + 1 + y
		r.Screen.SetContent(boardX, sy, '│', nil, borderStyle)
		r.Screen.SetContent(boardX+1+width*2, sy, '│', nil, borderStyle)

		for x, id := range tiles {
			sx := boardX + 1 + x*2
			left, right, style := cellGlyphs(id)
			r.Screen.SetContent(sx, sy, left, nil, style)
			r.Screen.SetContent(sx+1, sy, right, nil, style)
		}
	}
	for x := 0; x < width*2+2; x++ {
		r.Screen.SetContent(boardX+x, boardY, '─', nil, borderStyle)
		r.Screen.SetContent(boardX+x, boardY+1+len(rows), '─', nil, borderStyle)
	}

	r.drawPanel(frame.Session, boardX+width*2+5)
	r.Screen.Show()
}

func cellGlyphs(id tetris.TileID) (rune, rune, tcell.Style) {
	switch id {
	case tetris.Empty:
		return ' ', '.', emptyStyle
	case tetris.GhostTile:
		return '░', '░', tcell.StyleDefault.Foreground(tcell.ColorSilver)
	}
	c := engine.TileColor(id)
	color := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	return '█', '█', tcell.StyleDefault.Foreground(color)
}

func (r *Renderer) drawPanel(session *tetris.Session, x int) {
	stats := session.Stats()
	held := "-"
	if kind, ok := session.HeldKind(); ok {
		held = kind.String()
	}

	lines := []string{
		fmt.Sprintf("LINES  %d", stats.Lines),
		fmt.Sprintf("PIECES %d", stats.Locked),
		fmt.Sprintf("HOLD   %s", held),
		"",
		"a/d ←/→  move",
		"s ↓      soft drop",
		"space    hard drop",
		"q/e ↑    rotate",
		"v        hold",
		"esc      quit",
	}
	for i, line := range lines {
		r.drawText(x, boardY+1+i, line, textStyle)
	}

	if session.IsGameOver() {
		r.drawText(x, boardY+len(lines)+2, "GAME OVER", alertStyle)
		r.drawText(x, boardY+len(lines)+3, "press r to restart", textStyle)
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.Screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
