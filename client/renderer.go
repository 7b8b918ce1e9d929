package client

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tiltsnake/game"
)

// Renderer draws the board for one snapshot. Implementations are art styles;
// they never touch game state.
type Renderer interface {
	Draw(screen *ebiten.Image, s game.Snapshot, cellSize int)
}

var skins = map[string]func() Renderer{
	"flat":  func() Renderer { return &FlatRenderer{} },
	"pixel": func() Renderer { return &PixelRenderer{} },
}

// NewRenderer returns the renderer registered under name
func NewRenderer(name string) (Renderer, error) {
	mk, ok := skins[name]
	if !ok {
		return nil, fmt.Errorf("unknown skin %q (have %v)", name, SkinNames())
	}
	return mk(), nil
}

// SkinNames lists the registered renderers
func SkinNames() []string {
	names := make([]string, 0, len(skins))
	for name := range skins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	colorGridLine  = color.Gray{Y: 230}
	colorSnakeHead = color.Gray{Y: 30}
	colorSnakeBody = color.Gray{Y: 80}
	colorFruit     = color.RGBA{220, 60, 60, 255}
)

// FlatRenderer draws plain squares on a faint grid
type FlatRenderer struct{}

// Draw renders grid, fruit and snake
func (r *FlatRenderer) Draw(screen *ebiten.Image, s game.Snapshot, cellSize int) {
	cs := float32(cellSize)
	drawGrid(screen, s, cs, colorGridLine)

	fx, fy := float32(s.Fruit.X)*cs+cs/2, float32(s.Fruit.Y)*cs+cs/2
	vector.DrawFilledCircle(screen, fx, fy, cs*0.75/2, colorFruit, true)

	for i, c := range s.Snake {
		clr := colorSnakeBody
		if i == 0 {
			clr = colorSnakeHead
		}
		vector.DrawFilledRect(screen, float32(c.X)*cs, float32(c.Y)*cs, cs, cs, clr, false)
	}
}

func drawGrid(screen *ebiten.Image, s game.Snapshot, cs float32, clr color.Color) {
	w, h := float32(s.Cols)*cs, float32(s.Rows)*cs
	for x := 0; x <= s.Cols; x++ {
		vector.StrokeLine(screen, float32(x)*cs, 0, float32(x)*cs, h, 1, clr, false)
	}
	for y := 0; y <= s.Rows; y++ {
		vector.StrokeLine(screen, 0, float32(y)*cs, w, float32(y)*cs, 1, clr, false)
	}
}

var (
	pixelBoard    = color.RGBA{155, 188, 15, 255}
	pixelDark     = color.RGBA{15, 56, 15, 255}
	pixelMid      = color.RGBA{48, 98, 48, 255}
	pixelLight    = color.RGBA{139, 172, 15, 255}
	pixelFruitRed = color.RGBA{200, 40, 40, 255}
	pixelLeaf     = color.RGBA{40, 140, 40, 255}
)

// PixelRenderer draws a handheld-console style board: chunky inset body
// segments, a head with eyes facing the heading and a blocky apple.
type PixelRenderer struct{}

// Draw renders board, fruit and snake
func (r *PixelRenderer) Draw(screen *ebiten.Image, s game.Snapshot, cellSize int) {
	cs := float32(cellSize)
	px := cs / 6

	vector.DrawFilledRect(screen, 0, 0, float32(s.Cols)*cs, float32(s.Rows)*cs, pixelBoard, false)
	if GetDebugState().ShowGrid {
		drawGrid(screen, s, cs, pixelLight)
	}

	// apple: 4x4 body with a one-pixel leaf
	ax, ay := float32(s.Fruit.X)*cs, float32(s.Fruit.Y)*cs
	vector.DrawFilledRect(screen, ax+px, ay+2*px, 4*px, 3*px, pixelFruitRed, false)
	vector.DrawFilledRect(screen, ax+2*px, ay+px, 2*px, px, pixelFruitRed, false)
	vector.DrawFilledRect(screen, ax+3*px, ay, px, px, pixelLeaf, false)

	for i := len(s.Snake) - 1; i >= 0; i-- {
		c := s.Snake[i]
		x, y := float32(c.X)*cs, float32(c.Y)*cs
		clr := pixelMid
		if i == 0 || i%2 == 1 {
			clr = pixelDark
		}
		vector.DrawFilledRect(screen, x+px/2, y+px/2, cs-px, cs-px, clr, false)
	}

	if head, ok := s.Head(); ok {
		r.drawEyes(screen, head, s.Heading, cs, px)
	}
}

// drawEyes puts two light pixels on the leading edge of the head
func (r *PixelRenderer) drawEyes(screen *ebiten.Image, head game.Cell, heading game.Direction, cs, px float32) {
	cx := float32(head.X)*cs + cs/2
	cy := float32(head.Y)*cs + cs/2
	a := heading.Angle()
	fwdX, fwdY := float32(math.Cos(a)), float32(math.Sin(a))
	sideX, sideY := -fwdY, fwdX

	for _, side := range []float32{-1, 1} {
		ex := cx + fwdX*px*1.2 + sideX*px*1.4*side - px/2
		ey := cy + fwdY*px*1.2 + sideY*px*1.4*side - px/2
		vector.DrawFilledRect(screen, ex, ey, px, px, pixelLight, false)
	}
}
