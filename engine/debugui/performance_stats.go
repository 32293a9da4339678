package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	values []float32
	index  int
	filled int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{values: make([]float32, max(frames, 1))}
}

// Push records one frame time, overwriting the oldest once full.
func (h *FrameHistory) Push(ms float32) {
	h.values[h.index] = ms
	h.index = (h.index + 1) % len(h.values)
	h.filled = min(h.filled+1, len(h.values))
}

// Average returns the mean of the recorded frames, or 0 before the first.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.values {
		sum += v
	}
	return sum / float32(h.filled)
}

// Values returns the backing ring, oldest slot not necessarily first.
func (h *FrameHistory) Values() []float32 {
	return h.values
}

// PerformanceStats plots frame times and lists the scheduler's per-system
// timings next to the session counters.
type PerformanceStats struct {
	Scheduler *engine.Scheduler

	history *FrameHistory
	timer   *FrameTimer
}

func NewPerformanceStats(scheduler *engine.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		Scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
		timer:     NewFrameTimer(),
	}
}

func (ps *PerformanceStats) Render(session *tetris.Session) {
	ps.history.Push(ps.timer.GetDeltaTime() * 1000.0)

	imgui.SetNextWindowPosV(imgui.NewVec2(650, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text("Frame Time Graph (ms)")
	values := ps.history.Values()
	imgui.PlotLinesFloatPtr("##frametime", &values[0], int32(len(values)))

	imgui.Separator()
	counters := session.Stats()
	imgui.Text(fmt.Sprintf("Spawned: %d  Locked: %d", counters.Spawned, counters.Locked))
	imgui.Text(fmt.Sprintf("Lines: %d  Holds: %d", counters.Lines, counters.Holds))

	if ps.Scheduler != nil {
		stats := ps.Scheduler.GetStats()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Frames: %d  Systems: %d", stats.Frames, stats.SystemCount))

		if imgui.TreeNodeStr("System Details") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Name")
				imgui.TableSetupColumn("Runs")
				imgui.TableSetupColumn("Avg (ms)")
				imgui.TableSetupColumn("Min (ms)")
				imgui.TableSetupColumn("Max (ms)")
				imgui.TableHeadersRow()

				for _, sys := range stats.Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					if sys.Gameplay {
						imgui.Text(sys.Name)
					} else {
						imgui.TextColored(imgui.NewVec4(0.6, 0.8, 1, 1), sys.Name)
					}
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
					imgui.TableNextColumn()
					imgui.Text(millis(sys.AvgDuration))
					imgui.TableNextColumn()
					imgui.Text(millis(sys.MinDuration))
					imgui.TableNextColumn()
					imgui.Text(millis(sys.MaxDuration))
				}

				imgui.EndTable()
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
