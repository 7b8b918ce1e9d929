package game

import (
	"fmt"
	"math"
	"strings"
)

// Cell is a grid coordinate: X is the column, Y the row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one move away in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// In reports whether the cell lies inside a cols x rows grid
func (c Cell) In(cols, rows int) bool {
	return c.X >= 0 && c.X < cols && c.Y >= 0 && c.Y < rows
}

// Direction is a unit step along one grid axis.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// The four legal directions. Screen coordinates: +y points down.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Valid reports whether d is one of the four cardinal unit vectors
func (d Direction) Valid() bool {
	return (d.DX == 0) != (d.DY == 0) && d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Angle returns the heading in radians, 0 pointing right and growing clockwise
// on screen. Renderers use it to orient the head sprite.
func (d Direction) Angle() float64 {
	return math.Atan2(float64(d.DY), float64(d.DX))
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return fmt.Sprintf("direction(%d,%d)", d.DX, d.DY)
}

// ParseDirection accepts the names produced by String, case-insensitively.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	case "down":
		return Down, nil
	case "up":
		return Up, nil
	}
	return Direction{}, fmt.Errorf("unknown direction %q", name)
}
