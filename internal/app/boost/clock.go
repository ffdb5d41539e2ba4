package boost

import "time"

// Timer is a one-shot timer handle. Stop reports whether the timer was
// stopped before firing.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for the scheduler so tests can drive the decay
// window deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall clock backed by the time package.
func SystemClock() Clock { return systemClock{} }
