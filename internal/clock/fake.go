package clock

import "time"

// FakeClock pins Now to an explicit instant so billing-cycle arithmetic
// (anchor dates, elapsed months, cycle keys) can be asserted exactly.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts the clock at t, normalized to UTC like SystemClock.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward, e.g. into the next billing cycle.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
