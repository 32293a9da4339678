package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	frames := flag.Int64("frames", 0, "Stop after this many frames instead of the duration.")
	seed := flag.Uint64("seed", 1, "Seed for the piece randomizer and the input bot.")
	rate := flag.Float64("rate", 0.4, "Chance per frame that the bot issues a command.")
	frameTime := flag.Duration("dt", time.Second/60, "Simulated time per frame.")
	configPath := flag.String("config", "", "Optional YAML settings file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting blockfall soak test...")

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	settings.Randomizer.Seed = *seed

	cfg, err := settings.SessionConfig(settings.NewLogger(os.Stderr))
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	session, err := tetris.NewSession(cfg)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	canvas, err := engine.NewCanvas(session.Board().Bounds())
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}

	counter := engine.NewEventCounter()
	checker := &InvariantChecker{}
	sessionSystem := &engine.SessionSystem{}
	restarts := &RestartOnGameOver{}

	scheduler := engine.NewScheduler(session)
	scheduler.Register(restarts)
	scheduler.Register(&engine.InputSystem{Source: engine.NewRandomInput(*seed, *rate)})
	scheduler.Register(sessionSystem)
	scheduler.Register(checker)
	scheduler.Register(&engine.OverlaySystem{Canvas: canvas})
	scheduler.Register(&engine.EventSystem{Listeners: []engine.EventListener{counter, restarts}})

	report := &Report{
		Duration:       *duration,
		FrameLimit:     *frames,
		Seed:           *seed,
		Rate:           *rate,
		FrameTime:      *frameTime,
		Randomizer:     settings.Randomizer.Mode,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx := context.Background()
	if *frames > 0 {
		log.Printf("Running soak for %d frames...\n", *frames)
	} else {
		log.Printf("Running soak for %s...\n", *duration)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	dt := frameTime.Seconds()
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for *frames == 0 || totalUpdates < *frames {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++

			if totalUpdates%100000 == 0 {
				log.Printf("%d frames, %d pieces locked\n", totalUpdates, counter.Counts[tetris.EventLocked])
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.SimulatedTime = time.Duration(totalUpdates) * *frameTime
	report.Events = counter.Counts
	report.Applied = sessionSystem.Applied
	report.Rejected = sessionSystem.Rejected
	report.Violations = checker.Violations
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if checker.Violations > 0 {
		log.Fatalf("Soak found %d invariant violations", checker.Violations)
	}
	log.Println("Soak test complete.")
}
