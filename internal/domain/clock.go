package domain

import "time"

// Clock supplies the current time to the engine. Business logic never reads
// the wall clock directly so tests can drive maturity deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
