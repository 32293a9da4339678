package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// PauseControl pauses gameplay systems and steps them frame by frame.
type PauseControl struct {
	Scheduler *engine.Scheduler

	// steps left to request, one per rendered frame
	steps int
}

// Advance schedules n single-frame steps. It only has an effect while paused.
func (p *PauseControl) Advance(n int) {
	p.steps += n
}

// Remaining returns the number of steps not yet handed to the scheduler.
func (p *PauseControl) Remaining() int {
	return p.steps
}

// tick hands at most one pending step to the scheduler.
func (p *PauseControl) tick() {
	if p.steps == 0 {
		return
	}
	if !p.Scheduler.Paused() {
		p.steps = 0
		return
	}
	p.Scheduler.StepOnce()
	p.steps--
}

func (p *PauseControl) Render(session *tetris.Session) {
	p.tick()

	imgui.SetNextWindowPosV(imgui.NewVec2(650, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(250, 160), imgui.CondOnce)

	if !imgui.BeginV("Game Control", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if p.Scheduler.Paused() {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.3, 0.8, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
		if imgui.Button("Resume") {
			p.Scheduler.SetPaused(false)
			p.steps = 0
		}
		imgui.PopStyleColor()
		imgui.PopStyleColor()
		imgui.PopStyleColor()

		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")

		imgui.Separator()
		imgui.Text("Step Forward:")
		if imgui.Button("1 Frame") {
			p.Advance(1)
		}
		imgui.SameLine()
		if imgui.Button("10 Frames") {
			p.Advance(10)
		}
		imgui.SameLine()
		if imgui.Button("60 Frames") {
			p.Advance(60)
		}
		if p.steps > 0 {
			imgui.Text(fmt.Sprintf("Stepping: %d left", p.steps))
		}
	} else {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.7, 0.2, 0.2, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.8, 0.3, 0.3, 1.0))
		imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.6, 0.1, 0.1, 1.0))
		if imgui.Button("Pause") {
			p.Scheduler.SetPaused(true)
		}
		imgui.PopStyleColor()
		imgui.PopStyleColor()
		imgui.PopStyleColor()

		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	if session.IsGameOver() {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), "Game over")
	}

	imgui.End()
}
