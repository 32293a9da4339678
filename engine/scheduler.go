// Package engine runs a tetris session as an ordered list of systems, one
// frame at a time, and composes what frontends draw.
package engine

import (
	"context"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Paused          bool
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Gameplay       bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	gameplay       bool
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order against one session.
type Scheduler struct {
	session     *tetris.Session
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64

	paused atomic.Bool
	step   atomic.Bool
}

// NewScheduler creates a new scheduler for the given session.
func NewScheduler(session *tetris.Session) *Scheduler {
	return &Scheduler{
		session: session,
		systems: make([]System, 0),
	}
}

// Session returns the session the scheduler drives.
func (s *Scheduler) Session() *tetris.Session {
	return s.session
}

// Register adds a system to the end of the execution order. Systems
// implementing a Name() string method report under that name; others under
// their type name.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	_, gameplay := system.(Gameplay)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		gameplay:    gameplay,
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// SetPaused stops or resumes gameplay systems. It is safe to call from any
// goroutine.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// Paused reports whether gameplay systems are currently skipped.
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// StepOnce runs gameplay systems for a single frame while paused.
func (s *Scheduler) StepOnce() {
	s.step.Store(true)
}

// Once executes all registered systems once with the given delta time, then
// flushes the frame's command buffer into the session.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.session)
	runGameplay := !s.paused.Load() || s.step.Swap(false)

	for i, system := range s.systems {
		stats := s.systemStats[i]
		if stats.gameplay && !runGameplay {
			continue
		}

		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.session)
	s.frames++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Paused:      s.paused.Load(),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Gameplay:       internal.gameplay,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
