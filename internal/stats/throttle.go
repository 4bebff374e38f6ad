package stats

import "time"

// DefaultThrottleInterval is how often the live WPM figure refreshes.
const DefaultThrottleInterval = 10 * time.Second

// Throttle holds a displayed value and refreshes it at most once per interval.
type Throttle struct {
	interval time.Duration
	value    int
	last     time.Time
	primed   bool
}

// NewThrottle returns a Throttle with the given refresh interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Update offers v at time now and returns the value to display.
func (t *Throttle) Update(now time.Time, v int) int {
	if !t.primed || now.Sub(t.last) >= t.interval {
		t.value = v
		t.last = now
		t.primed = true
	}
	return t.value
}

// Value returns the last accepted value.
func (t *Throttle) Value() int {
	return t.value
}

// Reset forgets the held value.
func (t *Throttle) Reset() {
	t.value = 0
	t.last = time.Time{}
	t.primed = false
}
