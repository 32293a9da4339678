package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/tetris"
)

// PieceInspector shows the active piece, its timers and the hold slot, with a
// button per player command.
type PieceInspector struct {
	Actions
}

func (p *PieceInspector) Render(session *tetris.Session) {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 420), imgui.CondOnce)

	if !imgui.BeginV("Piece", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state, ok := session.Piece()
	if !ok {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), "No active piece")
	} else {
		imgui.Text(fmt.Sprintf("Kind: %s (tile %d)", state.Kind, state.Tile))
		imgui.Text(fmt.Sprintf("Position: %s", state.Position))
		imgui.Text(fmt.Sprintf("Rotation: %d", state.Rotation))

		if imgui.TreeNodeStr("Cells") {
			for i, c := range state.Cells {
				imgui.BulletText(fmt.Sprintf("%d: %s -> %s", i, c, state.Position.Add(c)))
			}
			imgui.TreePop()
		}

		imgui.Separator()
		imgui.Text("Timers")
		delays := session.Config().Delays()
		for _, timer := range Timers(state, delays) {
			imgui.ProgressBarV(float32(timer.Fraction), imgui.NewVec2(-1, 0), timer.Label)
		}
	}

	imgui.Separator()
	if held, ok := session.HeldKind(); ok {
		imgui.Text(fmt.Sprintf("Held: %s", held))
	} else {
		imgui.Text("Held: -")
	}
	if session.CanHold() {
		imgui.TextColored(imgui.NewVec4(0.3, 1, 0.3, 1), "Hold available")
	} else {
		imgui.TextColored(imgui.NewVec4(0.6, 0.6, 0.6, 1), "Hold used this turn")
	}

	imgui.Separator()
	for i, cmd := range tetris.Commands {
		if i%3 != 0 {
			imgui.SameLine()
		}
		if imgui.Button(cmd.String()) {
			p.Issue(cmd)
		}
	}

	imgui.End()
}

// Timer is one labelled progress value of a piece.
type Timer struct {
	Label    string
	Fraction float64
}

// Timers reports the piece timers as fractions of their delays, clamped to
// [0, 1]. Gravity counts up toward the next step.
func Timers(state tetris.PieceState, delays tetris.Delays) []Timer {
	return []Timer{
		{
			Label:    fmt.Sprintf("gravity %.2fs", state.NextStep),
			Fraction: fraction(delays.FreeStep-state.NextStep, delays.FreeStep),
		},
		{
			Label:    fmt.Sprintf("control %.2fs", state.SinceControl),
			Fraction: fraction(state.SinceControl, delays.ControlledStep),
		},
		{
			Label:    fmt.Sprintf("lock %.2fs", state.Grounded),
			Fraction: fraction(state.Grounded, delays.Lock),
		},
	}
}

func fraction(v, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return min(max(v/total, 0), 1)
}
