package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	FrameLimit int64
	Seed       uint64
	Rate       float64
	FrameTime  time.Duration
	Randomizer string

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Events         map[tetris.EventType]int
	Applied        int64
	Rejected       int64
	Violations     int
	Systems        []engine.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// LinesPerPiece is the ratio of cleared rows to locked pieces.
func (r *Report) LinesPerPiece() string {
	locked := r.Events[tetris.EventLocked]
	if locked == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", float64(r.Events[tetris.EventLinesCleared])/float64(locked))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Configuration
- **Run Duration:** {{if .FrameLimit}}{{.FrameLimit}} frames{{else}}{{.Duration}}{{end}}
- **Seed:** {{.Seed}}
- **Randomizer:** {{.Randomizer}}
- **Bot Rate:** {{printf "%.2f" .Rate}}
- **Frame Time:** {{.FrameTime}}

## Gameplay
- **Frames:** {{.TotalUpdates}}
- **Simulated Time:** {{.SimulatedTime}}
- **Commands Applied:** {{.Applied}}
- **Commands Rejected:** {{.Rejected}}
- **Line Clear Events Per Piece:** {{.LinesPerPiece}}
- **Invariant Violations:** {{.Violations}}
{{range $type, $count := .Events}}- {{$type}}: {{$count}}
{{end}}
## Performance Results
- **Total Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Systems}}- {{.Name}}: runs {{.ExecutionCount}}, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
