package game

// Axis flags which orientation angles a sample carries.
type Axis uint8

const (
	AxisAlpha Axis = 1 << iota
	AxisBeta
	AxisGamma

	AllAxes = AxisAlpha | AxisBeta | AxisGamma
)

// OrientationSample is one raw device-orientation reading in degrees.
// Beta is the front/back tilt, Gamma the left/right tilt and Alpha the
// compass heading, which the game ignores.
type OrientationSample struct {
	Alpha   float64
	Beta    float64
	Gamma   float64
	Present Axis
}

// Tilt is a screen-relative tilt pair in degrees.
type Tilt struct {
	ForwardBack float64
	LeftRight   float64
}

// Normalizer keeps the most recent raw orientation and screen rotation and
// produces rotation-compensated tilt on demand. There is no history: every
// sample overwrites the previous one.
type Normalizer struct {
	alpha       float64
	raw         Tilt
	screenAngle int
}

// NewNormalizer creates a normalizer with level tilt and an upright screen
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Update stores the axes present in the sample. Missing axes keep their
// previous value.
func (n *Normalizer) Update(s OrientationSample) {
	if s.Present&AxisAlpha != 0 {
		n.alpha = s.Alpha
	}
	if s.Present&AxisBeta != 0 {
		n.raw.ForwardBack = s.Beta
	}
	if s.Present&AxisGamma != 0 {
		n.raw.LeftRight = s.Gamma
	}
}

// SetScreenAngle records the current screen rotation in degrees
func (n *Normalizer) SetScreenAngle(deg int) {
	n.screenAngle = deg
}

// ScreenAngle returns the last recorded screen rotation
func (n *Normalizer) ScreenAngle() int {
	return n.screenAngle
}

// Raw returns the last raw tilt before rotation compensation
func (n *Normalizer) Raw() Tilt {
	return n.raw
}

// Heading returns the last alpha angle
func (n *Normalizer) Heading() float64 {
	return n.alpha
}

// Tilt returns the latest tilt compensated for the screen rotation
func (n *Normalizer) Tilt() Tilt {
	return Compensate(n.raw, n.screenAngle)
}

// Compensate maps device-relative tilt into screen-relative tilt for the
// given screen rotation. Angles other than the quarter turns pass through.
func Compensate(raw Tilt, screenAngle int) Tilt {
	switch screenAngle {
	case 90, -270:
		return Tilt{ForwardBack: -raw.LeftRight, LeftRight: raw.ForwardBack}
	case -90, 270:
		return Tilt{ForwardBack: raw.LeftRight, LeftRight: -raw.ForwardBack}
	case 180, -180:
		return Tilt{ForwardBack: -raw.ForwardBack, LeftRight: -raw.LeftRight}
	default:
		return raw
	}
}
