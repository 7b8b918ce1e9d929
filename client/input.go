package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tiltsnake/game"
)

// keyDirections maps arrow keys and WASD onto grid directions
var keyDirections = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowUp:    game.Up,
	ebiten.KeyW:          game.Up,
	ebiten.KeyArrowDown:  game.Down,
	ebiten.KeyS:          game.Down,
	ebiten.KeyArrowLeft:  game.Left,
	ebiten.KeyA:          game.Left,
	ebiten.KeyArrowRight: game.Right,
	ebiten.KeyD:          game.Right,
}

// Controls provides input from keyboard, mouse and touch
type Controls struct {
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

// NewControls creates a new input reader
func NewControls() *Controls {
	return &Controls{
		keys:    make([]ebiten.Key, 0, 8),
		touches: make([]ebiten.TouchID, 0, 4),
	}
}

// Update collects this frame's key and touch presses
func (c *Controls) Update() {
	c.keys = inpututil.AppendJustPressedKeys(c.keys[:0])
	c.touches = inpututil.AppendJustPressedTouchIDs(c.touches[:0])
}

// Directions returns the directions pressed this frame, in key order
func (c *Controls) Directions() []game.Direction {
	var dirs []game.Direction
	for _, k := range c.keys {
		if d, ok := keyDirections[k]; ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Tapped returns true on a new touch or left click
func (c *Controls) Tapped() bool {
	return len(c.touches) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// ShouldRestart returns true if R or space was pressed
func (c *Controls) ShouldRestart() bool {
	return c.pressed(ebiten.KeyR) || c.pressed(ebiten.KeySpace)
}

// ToggleDebug returns true if F1 was pressed
func (c *Controls) ToggleDebug() bool {
	return c.pressed(ebiten.KeyF1)
}

func (c *Controls) pressed(key ebiten.Key) bool {
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}
