package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/engine/debugui"
	debugui_ebiten "github.com/plus3/blockfall/engine/debugui/ebiten"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/tetris"
)

const (
	ScreenWidth  = 1100
	ScreenHeight = 720
)

var configPath = flag.String("config", "", "path to a YAML settings file")

type Game struct {
	Scheduler    *engine.Scheduler
	Canvas       *engine.Canvas
	UI           *debugui.ImguiSystem
	ImguiBackend *debugui_ebiten.ImguiBackend

	deltaTime float64
	restart   bool
}

func main() {
	flag.Parse()

	settings := config.MustLoad(*configPath)
	logger := settings.NewLogger(os.Stderr)

	cfg, err := settings.SessionConfig(logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	session, err := tetris.NewSession(cfg)
	if err != nil {
		logger.Error("unable to start session", "error", err)
		os.Exit(1)
	}

	canvas, err := engine.NewCanvas(session.Board().Bounds())
	if err != nil {
		logger.Error("unable to create canvas", "error", err)
		os.Exit(1)
	}

	imguiBackend := debugui_ebiten.NewImguiBackend("Blockfall", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.FrameRate)

	player := sound.NewPlayer(0.3)
	player.SetMuted(settings.Mute)
	if !settings.Mute {
		if err := player.Init(); err != nil {
			logger.Warn("audio unavailable", "error", err)
			player.SetMuted(true)
		}
	}
	defer player.Close()

	game := &Game{
		Canvas:       canvas,
		ImguiBackend: imguiBackend,
		deltaTime:    1.0 / float64(settings.FrameRate),
	}

	ui := &debugui.ImguiSystem{Hidden: true}
	scheduler := engine.NewScheduler(session)
	ui.Add(
		&debugui.BoardInspector{Canvas: canvas},
		&debugui.PieceInspector{},
		debugui.NewPerformanceStats(scheduler, 120),
		&debugui.PauseControl{Scheduler: scheduler},
	)

	scheduler.Register(engine.SystemFunc(game.restartSystem))
	scheduler.Register(&engine.InputSystem{Source: &Keyboard{UI: ui}})
	scheduler.Register(&engine.SessionSystem{})
	scheduler.Register(&engine.OverlaySystem{Canvas: canvas})
	scheduler.Register(&engine.EventSystem{
		Listeners: []engine.EventListener{player},
		Logger:    logger.With("component", "events"),
	})
	scheduler.Register(ui)

	game.Scheduler = scheduler
	game.UI = ui

	logger.Info("starting blockfall",
		"width", cfg.Width,
		"height", cfg.Height,
		"randomizer", settings.Randomizer.Mode,
		"tps", settings.FrameRate,
	)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game stopped", "error", err)
		os.Exit(1)
	}
}

// restartSystem turns a pending R press into a frame restart command.
func (g *Game) restartSystem(frame *engine.UpdateFrame) {
	if g.restart {
		frame.Commands.Restart()
		g.restart = false
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.UI.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.Scheduler.Session().IsGameOver() {
		g.restart = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.Scheduler.SetPaused(!g.Scheduler.Paused())
	}

	g.ImguiBackend.BeginFrame()
	g.Scheduler.Once(g.deltaTime)
	g.ImguiBackend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawBoard(screen, g.Canvas)
	drawHUD(screen, g.Scheduler.Session(), g.Scheduler.Paused())
	g.ImguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ImguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
