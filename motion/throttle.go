package motion

import "time"

// DefaultSendInterval limits clients to roughly 33 readings per second
const DefaultSendInterval = 30 * time.Millisecond

// Throttle lets an event through at most once per interval
type Throttle struct {
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle; the first call to Allow always passes
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether an event at now may be sent, and if so records it
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
