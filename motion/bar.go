package motion

import "math/rand"

// Bar geometry for drawing a remote device on the overlay
const (
	BarWidth     = 40
	screenMargin = 50
)

// BarHeight maps forward/back tilt from [-90, 90] degrees onto [0, screenHeight]
func (m MotionData) BarHeight(screenHeight float64) float64 {
	beta := m.Orientation.Beta
	if beta < -90 {
		beta = -90
	}
	if beta > 90 {
		beta = 90
	}
	return (beta + 90) / 180 * screenHeight
}

// RandomScreenPosition picks a spot at least 50px from every edge.
// Screens smaller than the margins collapse to their center.
func RandomScreenPosition(rng *rand.Rand, width, height float64) Vec2 {
	return Vec2{
		X: marginCoord(rng, width),
		Y: marginCoord(rng, height),
	}
}

func marginCoord(rng *rand.Rand, size float64) float64 {
	span := size - 2*screenMargin
	if span <= 0 {
		return size / 2
	}
	return screenMargin + rng.Float64()*span
}
