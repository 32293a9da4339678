package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/tetris"
)

var (
	configPath = flag.String("config", "", "path to a YAML settings file")
	logPath    = flag.String("log", "", "write logs to this file instead of discarding them")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := settings.NewLogger(logOut)

	cfg, err := settings.SessionConfig(logger)
	if err != nil {
		return err
	}

	session, err := tetris.NewSession(cfg)
	if err != nil {
		return err
	}

	canvas, err := engine.NewCanvas(session.Board().Bounds())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	player := sound.NewPlayer(0.3)
	player.SetMuted(settings.Mute)
	if !settings.Mute {
		if err := player.Init(); err != nil {
			// Non-fatal, the game runs without sound
			logger.Warn("audio unavailable", "error", err)
			player.SetMuted(true)
		}
	}
	defer player.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := engine.NewChannelInput(64)
	var restart atomic.Bool
	go pollKeys(screen, input, &restart, cancel, logger)

	scheduler := engine.NewScheduler(session)
	scheduler.Register(engine.SystemFunc(func(frame *engine.UpdateFrame) {
		if restart.Swap(false) && frame.Session.IsGameOver() {
			frame.Commands.Restart()
		}
	}))
	scheduler.Register(&engine.InputSystem{Source: input})
	scheduler.Register(&engine.SessionSystem{})
	scheduler.Register(&engine.OverlaySystem{Canvas: canvas})
	scheduler.Register(&engine.EventSystem{
		Listeners: []engine.EventListener{player},
		Logger:    logger.With("component", "events"),
	})
	scheduler.Register(&Renderer{Screen: screen, Canvas: canvas})

	logger.Info("starting blockfall-term", "width", cfg.Width, "height", cfg.Height)
	scheduler.Run(ctx, settings.FrameInterval())
	logger.Info("stopped", "frames", scheduler.GetStats().Frames)
	return nil
}

// pollKeys feeds key presses into input until the player quits.
func pollKeys(screen tcell.Screen, input *engine.ChannelInput, restart *atomic.Bool, quit context.CancelFunc, logger *slog.Logger) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				quit()
				return
			}
			if ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R') {
				restart.Store(true)
				continue
			}
			if cmd, ok := commandForKey(ev); ok {
				if !input.Send(cmd) {
					logger.Debug("input buffer full", "dropped", cmd.String())
				}
			}
		}
	}
}

func commandForKey(ev *tcell.EventKey) (tetris.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.MoveLeft, true
	case tcell.KeyRight:
		return tetris.MoveRight, true
	case tcell.KeyDown:
		return tetris.SoftDrop, true
	case tcell.KeyUp:
		return tetris.RotateCW, true
	case tcell.KeyRune:
		return commandForRune(ev.Rune())
	}
	return 0, false
}

func commandForRune(r rune) (tetris.Command, bool) {
	switch r {
	case 'a', 'A':
		return tetris.MoveLeft, true
	case 'd', 'D':
		return tetris.MoveRight, true
	case 's', 'S':
		return tetris.SoftDrop, true
	case ' ':
		return tetris.HardDrop, true
	case 'q', 'Q':
		return tetris.RotateCCW, true
	case 'e', 'E':
		return tetris.RotateCW, true
	case 'v', 'V':
		return tetris.Hold, true
	}
	return 0, false
}
