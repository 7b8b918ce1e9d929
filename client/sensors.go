package client

import (
	"tiltsnake/game"
	"tiltsnake/motion"
)

// Reading is the newest sensor state reported by the platform
type Reading struct {
	Orientation  game.OrientationSample
	Acceleration motion.Vec3
	RotationRate motion.Euler
	ScreenAngle  int
}

// SensorSource is the platform side of tilt input. Implementations are fed
// from event callbacks and polled once per frame, so they must be safe for
// concurrent use.
type SensorSource interface {
	// Latest returns the newest reading; ok stays false until the device
	// has reported anything
	Latest() (r Reading, ok bool)

	// Mobile reports whether the page runs on a phone or tablet
	Mobile() bool

	// Permitted reports whether orientation events are being delivered
	Permitted() bool
}
