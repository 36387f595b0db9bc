package clock

import "time"

// Clock abstracts "now" so as-of dates can be pinned in tests and backfills.
type Clock interface {
	Now() time.Time
}

// RealClock returns the system time.
type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant until Set is called.
type FixedClock struct {
	current time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

func (f *FixedClock) Now() time.Time {
	return f.current
}

func (f *FixedClock) Set(t time.Time) {
	f.current = t
}
