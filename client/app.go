package client

import (
	"context"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tiltsnake/game"
)

var (
	desktopMessage    = []string{"This is a mobile experience.", "Please also open this URL on your phone's browser."}
	permissionMessage = []string{"Waiting for motion sensor permission,", "tap the screen to allow."}
)

var colorBackground = color.Gray{Y: 240}

// Options selects the optional parts of an App
type Options struct {
	Skin    string       // renderer name, see SkinNames
	Sensors SensorSource // nil means PlatformSensors()
	Logger  *log.Logger
	Rand    *rand.Rand
}

// App is the ebiten.Game that ties sensors, keyboard, engine and drawing
// together. All engine access happens on the Update goroutine.
type App struct {
	config     game.Config
	engine     *game.Engine
	normalizer *game.Normalizer
	arbiter    *game.Arbiter
	controls   *Controls
	renderer   Renderer
	hud        *HUD
	overlay    *Overlay
	sensors    SensorSource
	pilot      *game.Pilot
	logger     *log.Logger

	// Size reported by Layout and the size the engine was last reset to
	width, height           int
	boardWidth, boardHeight int
}

// NewApp creates the game with a fresh round on the configured screen size
func NewApp(config game.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Sensors == nil {
		opts.Sensors = PlatformSensors()
	}
	if opts.Skin == "" {
		opts.Skin = "flat"
	}

	renderer, err := NewRenderer(opts.Skin)
	if err != nil {
		return nil, err
	}
	engine, err := game.NewEngine(config, opts.Rand)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      config,
		engine:      engine,
		normalizer:  game.NewNormalizer(),
		arbiter:     game.NewArbiter(config, engine),
		controls:    NewControls(),
		renderer:    renderer,
		hud:         NewHUD(),
		overlay:     NewOverlay(opts.Rand, config.ScreenWidth, config.ScreenHeight, opts.Logger),
		sensors:     opts.Sensors,
		logger:      opts.Logger,
		width:       config.ScreenWidth,
		height:      config.ScreenHeight,
		boardWidth:  config.ScreenWidth,
		boardHeight: config.ScreenHeight,
	}, nil
}

// SetPilot lets a script steer the snake after every step
func (a *App) SetPilot(p *game.Pilot) {
	a.pilot = p
}

// ConnectOverlay joins the shared motion overlay in the background. The game
// runs the same with or without it.
func (a *App) ConnectOverlay(ctx context.Context, url string) {
	if url == "" {
		return
	}
	go func() {
		if err := a.overlay.Connect(ctx, url); err != nil && ctx.Err() == nil {
			a.logger.Printf("overlay stopped: %v", err)
		}
	}()
}

// Update advances input and, every MoveEvery frames, the snake
func (a *App) Update() error {
	a.controls.Update()
	if a.controls.ToggleDebug() {
		debugState := GetDebugState()
		debugState.ShowGrid = !debugState.ShowGrid
	}

	if a.width != a.boardWidth || a.height != a.boardHeight {
		a.boardWidth, a.boardHeight = a.width, a.height
		a.engine.Resize(a.width, a.height)
	}

	reading, seen := a.sensors.Latest()
	if seen {
		a.normalizer.Update(reading.Orientation)
		a.normalizer.SetScreenAngle(reading.ScreenAngle)
	}

	mobile := a.sensors.Mobile()
	permitted := a.sensors.Permitted()
	if mobile && !permitted {
		return nil
	}

	if a.engine.GameOver() {
		if a.controls.Tapped() || a.controls.ShouldRestart() {
			a.engine.Restart()
		}
	} else {
		for _, d := range a.controls.Directions() {
			a.arbiter.Press(d)
		}
		if permitted {
			a.arbiter.Observe(a.normalizer.Tilt(), time.Now())
		}
		if a.engine.Frame() && a.pilot != nil {
			if err := a.pilot.Drive(a.engine.Snapshot(), a.arbiter); err != nil {
				a.logger.Printf("pilot disabled: %v", err)
				a.pilot = nil
			}
		}
	}

	if seen {
		a.overlay.Emit(reading, time.Now())
	}
	return nil
}

// Draw renders overlay, board, HUD and any message on top
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.overlay.Draw(screen)

	mobile := a.sensors.Mobile()
	if mobile && !a.sensors.Permitted() {
		a.hud.DrawMessage(screen, float64(screen.Bounds().Dy())/2, permissionMessage...)
		return
	}

	s := a.engine.Snapshot()
	a.renderer.Draw(screen, s, a.config.CellSize)
	a.hud.Draw(screen, s, hudInfo{
		Raw:    a.normalizer.Raw(),
		Mobile: mobile,
		Users:  a.overlay.Users(),
	})
	if !mobile {
		a.hud.DrawMessage(screen, float64(screen.Bounds().Dy())-50, desktopMessage...)
	}
	if s.GameOver {
		a.hud.DrawGameOver(screen, s, mobile)
	}
}

// Layout follows the window so the grid always fills the screen
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
