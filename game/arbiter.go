package game

import (
	"math"
	"time"
)

// DirectionTarget receives direction intents. The engine implements it.
type DirectionTarget interface {
	PendingDirection() Direction
	SetPendingDirection(d Direction)
}

// Arbiter turns continuous tilt and discrete key presses into pending
// direction changes on a DirectionTarget.
type Arbiter struct {
	target    DirectionTarget
	threshold float64
	cooldown  time.Duration

	lastChange time.Time
}

// NewArbiter creates an arbiter using the deadzone and cooldown from config
func NewArbiter(config Config, target DirectionTarget) *Arbiter {
	return &Arbiter{
		target:    target,
		threshold: config.TiltThreshold,
		cooldown:  config.DirectionCooldown,
	}
}

// Intent resolves a tilt pair into a direction. It reports false inside the
// deadzone. When both axes have the same magnitude forward/back wins.
func Intent(t Tilt, threshold float64) (Direction, bool) {
	fb, lr := math.Abs(t.ForwardBack), math.Abs(t.LeftRight)
	if (fb < threshold && lr < threshold) || (fb == 0 && lr == 0) {
		return Direction{}, false
	}
	if lr > fb {
		if t.LeftRight > 0 {
			return Right, true
		}
		return Left, true
	}
	if t.ForwardBack > 0 {
		return Down, true
	}
	return Up, true
}

// Observe feeds one tilt sample taken at now. It returns true when the
// pending direction changed.
func (a *Arbiter) Observe(t Tilt, now time.Time) bool {
	d, ok := Intent(t, a.threshold)
	if !ok {
		return false
	}
	if !a.lastChange.IsZero() && now.Sub(a.lastChange) < a.cooldown {
		return false
	}
	if d == a.target.PendingDirection() {
		return false
	}
	a.target.SetPendingDirection(d)
	a.lastChange = now
	return true
}

// Press applies a discrete key press immediately, ignoring deadzone and
// cooldown.
func (a *Arbiter) Press(d Direction) {
	if !d.Valid() {
		return
	}
	a.target.SetPendingDirection(d)
}
