package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"tiltsnake/client"
	"tiltsnake/game"
)

func main() {
	serverURL := flag.String("server", "", "Motion overlay websocket URL (or set TILTSNAKE_SERVER env var)")
	skin := flag.String("skin", "flat", "Board renderer: flat or pixel")
	pilotFile := flag.String("pilot", "", "JavaScript file defining decide(state) to steer the snake")
	cellSize := flag.Int("cell", 0, "Cell size in pixels (0 keeps the default)")
	flag.Parse()

	config := game.DefaultConfig()
	if *cellSize > 0 {
		config.CellSize = *cellSize
	}

	app, err := client.NewApp(config, client.Options{Skin: *skin})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	if *pilotFile != "" {
		code, err := os.ReadFile(*pilotFile)
		if err != nil {
			log.Fatalf("Failed to read pilot script: %v", err)
		}
		pilot, err := game.NewPilot(string(code))
		if err != nil {
			log.Fatalf("Failed to load pilot script: %v", err)
		}
		app.SetPilot(pilot)
		log.Printf("Pilot script %s loaded", *pilotFile)
	}

	url := *serverURL
	if url == "" {
		url = client.DefaultServerURL()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.ConnectOverlay(ctx, url)

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tilt Snake")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
