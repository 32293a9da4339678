package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// BoardInspector shows the committed grid, the per-row fill counts and a few
// board edits useful when testing line clears.
type BoardInspector struct {
	Actions
	// Canvas, when set, is drawn instead of the bare board so the active piece
	// and ghost are visible.
	Canvas *engine.Canvas
}

func (b *BoardInspector) Render(session *tetris.Session) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 560), imgui.CondOnce)

	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	board := session.Board()
	bounds := board.Bounds()

	imgui.Text(fmt.Sprintf("Size: %dx%d", bounds.Width(), bounds.Height()))
	imgui.Text(fmt.Sprintf("Occupied: %d", board.Len()))
	imgui.Text(fmt.Sprintf("Revision: %d", board.Revision()))
	if session.IsGameOver() {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), "GAME OVER")
	}

	imgui.Separator()

	rows := b.rows(board)
	for _, line := range GridLines(rows) {
		imgui.Text(line)
	}

	imgui.Separator()

	if imgui.Button("Restart") {
		b.Restart()
	}
	imgui.SameLine()
	if imgui.Button("Clear Board") {
		b.Edit(func(s *tetris.Session) { s.Board().Reset() })
	}
	if imgui.Button("Fill Bottom Row") {
		b.Edit(FillRowEdit(bounds.YMin))
	}
	imgui.SameLine()
	if imgui.Button("Clear Full Rows") {
		b.Edit(func(s *tetris.Session) { s.Board().ClearFullRows() })
	}

	if imgui.TreeNodeStr("Row Fill") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RowFillTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Row")
			imgui.TableSetupColumn("Filled")
			imgui.TableHeadersRow()

			for y := bounds.YMax - 1; y >= bounds.YMin; y-- {
				count := board.RowCount(y)
				if count == 0 {
					continue
				}
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", y))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d/%d", count, bounds.Width()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (b *BoardInspector) rows(board *tetris.Board) [][]tetris.TileID {
	if b.Canvas != nil {
		return b.Canvas.Rows()
	}

	bounds := board.Bounds()
	rows := make([][]tetris.TileID, 0, bounds.Height())
	for y := bounds.YMax - 1; y >= bounds.YMin; y-- {
		row := make([]tetris.TileID, 0, bounds.Width())
		for x := bounds.XMin; x < bounds.XMax; x++ {
			row = append(row, board.TileAt(tetris.Cell{X: x, Y: y}))
		}
		rows = append(rows, row)
	}
	return rows
}

// GridLines renders rows as one string per row using engine.TileGlyph.
func GridLines(rows [][]tetris.TileID) []string {
	lines := make([]string, 0, len(rows))
	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for _, id := range row {
			sb.WriteRune(engine.TileGlyph(id))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// FillRowEdit returns an edit that fills row y except its rightmost column
// and any cell the active piece covers, so one more piece can clear it.
func FillRowEdit(y int) func(*tetris.Session) {
	return func(s *tetris.Session) {
		board := s.Board()
		bounds := board.Bounds()
		active, _, hasActive := s.ActiveCells()

		for x := bounds.XMin; x < bounds.XMax-1; x++ {
			c := tetris.Cell{X: x, Y: y}
			if hasActive && slices.Contains(active[:], c) {
				continue
			}
			board.Set(c, tetris.TileID(1+(x-bounds.XMin)%int(tetris.KindCount)))
		}
	}
}
