package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds game configuration constants
type Config struct {
	// CellSize is the edge length of one grid cell in pixels
	CellSize int

	// MinCols and MinRows keep the board playable on tiny viewports
	MinCols int
	MinRows int

	// InitialLength is the snake length after every reset
	InitialLength int

	// GrowthPerFruit is added to the target length for each fruit eaten
	GrowthPerFruit int

	// MoveEvery is the number of rendered frames between simulation steps
	MoveEvery int

	// TiltThreshold is the deadzone in degrees
	TiltThreshold float64

	// DirectionCooldown is the minimum time between accepted tilt changes
	DirectionCooldown time.Duration

	// FruitSpawnAttempts caps the random search for a free fruit cell
	FruitSpawnAttempts int

	// ScreenWidth is the initial viewport width in pixels
	ScreenWidth int

	// ScreenHeight is the initial viewport height in pixels
	ScreenHeight int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		CellSize:           18,
		MinCols:            10,
		MinRows:            10,
		InitialLength:      6,
		GrowthPerFruit:     2,
		MoveEvery:          6,
		TiltThreshold:      12,
		DirectionCooldown:  140 * time.Millisecond,
		FruitSpawnAttempts: 2000,
		ScreenWidth:        540,
		ScreenHeight:       960,
	}
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial length %d", ErrInvalidConfig, c.InitialLength)
	case c.MinCols/2 < c.InitialLength-1 || c.MinRows < 1:
		// the starting snake is laid out horizontally from the center column
		return fmt.Errorf("%w: minimum grid %dx%d cannot hold a snake of %d",
			ErrInvalidConfig, c.MinCols, c.MinRows, c.InitialLength)
	case c.MoveEvery < 1:
		return fmt.Errorf("%w: move every %d frames", ErrInvalidConfig, c.MoveEvery)
	case c.GrowthPerFruit < 0:
		return fmt.Errorf("%w: growth per fruit %d", ErrInvalidConfig, c.GrowthPerFruit)
	case c.TiltThreshold < 0 || c.DirectionCooldown < 0:
		return fmt.Errorf("%w: negative tilt threshold or cooldown", ErrInvalidConfig)
	case c.FruitSpawnAttempts < 1:
		return fmt.Errorf("%w: fruit spawn attempts %d", ErrInvalidConfig, c.FruitSpawnAttempts)
	}
	return nil
}

// GridSize converts a pixel viewport into grid columns and rows, never
// smaller than the configured minimum.
func (c Config) GridSize(pixelWidth, pixelHeight int) (int, int) {
	cols := max(pixelWidth/c.CellSize, c.MinCols)
	rows := max(pixelHeight/c.CellSize, c.MinRows)
	return cols, rows
}
