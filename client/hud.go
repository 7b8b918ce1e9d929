package client

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"tiltsnake/game"
)

const (
	hudMarginX    = 10
	hudMarginY    = 10
	hudLineHeight = 20
)

var (
	colorHUDText     = color.Black
	colorGameOverDim = color.RGBA{0, 0, 0, 160}
	colorGameOver    = color.White
)

// HUD draws score, sensor readout and messages over the board
type HUD struct {
	face *text.GoXFace
}

// NewHUD creates a HUD using the built-in 7x13 bitmap font
func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

// hudInfo is what the HUD shows besides the snapshot
type hudInfo struct {
	Raw    game.Tilt
	Mobile bool
	Users  int
}

// Draw renders the corner readout
func (h *HUD) Draw(screen *ebiten.Image, s game.Snapshot, info hudInfo) {
	score := fmt.Sprintf("Score: %d", s.Score)
	if s.Best > 0 {
		score = fmt.Sprintf("Score: %d  Best: %d", s.Score, s.Best)
	}
	h.left(screen, score, 0)
	h.left(screen, fmt.Sprintf("beta: %.1f  gamma: %.1f", info.Raw.ForwardBack, info.Raw.LeftRight), 1)

	hint := "Tilt to move. Tap to restart when game over."
	if !info.Mobile {
		hint = "Arrow keys or WASD to move. Click to restart when game over."
	}
	h.left(screen, hint, 2)

	if info.Users > 1 {
		h.left(screen, fmt.Sprintf("%d devices connected", info.Users), 3)
	}

	if GetDebugState().ShowGrid {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("TPS: %.0f  FPS: %.0f  grid: %dx%d  steps: %d",
				ebiten.ActualTPS(), ebiten.ActualFPS(), s.Cols, s.Rows, s.Steps),
			hudMarginX, screen.Bounds().Dy()-hudLineHeight)
	}
}

// DrawGameOver dims the screen and shows the final score
func (h *HUD) DrawGameOver(screen *ebiten.Image, s game.Snapshot, mobile bool) {
	w, ht := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(ht), colorGameOverDim, false)

	cx, cy := float64(w)/2, float64(ht)/2
	h.centered(screen, "GAME OVER", cx, cy-24, 2, colorGameOver)
	h.centered(screen, fmt.Sprintf("Score: %d", s.Score), cx, cy+12, 1, colorGameOver)
	switch s.DeathCause {
	case game.DeathWall:
		h.centered(screen, "You hit the wall", cx, cy+30, 1, colorGameOver)
	case game.DeathSelf:
		h.centered(screen, "You bit yourself", cx, cy+30, 1, colorGameOver)
	}
	restart := "Tap to restart"
	if !mobile {
		restart = "Click or press R to restart"
	}
	h.centered(screen, restart, cx, cy+50, 1, colorGameOver)
}

// DrawMessage shows a horizontally centered notice, one line per entry,
// starting at y
func (h *HUD) DrawMessage(screen *ebiten.Image, y float64, lines ...string) {
	cx := float64(screen.Bounds().Dx()) / 2
	for i, line := range lines {
		h.centered(screen, line, cx, y+float64(i*hudLineHeight), 1, colorHUDText)
	}
}

func (h *HUD) left(screen *ebiten.Image, msg string, line int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(hudMarginX, float64(hudMarginY+line*hudLineHeight))
	op.ColorScale.ScaleWithColor(colorHUDText)
	text.Draw(screen, msg, h.face, op)
}

func (h *HUD) centered(screen *ebiten.Image, msg string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, h.face, op)
}
