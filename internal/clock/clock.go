// Package clock abstracts wall-clock access so billing arithmetic can be
// tested against an injected time.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
