// Package schedule drives periodic work from one self-rearming timer.
package schedule

import "time"

// Clock provides the time operations the scheduler needs.
// Tests inject a manual clock to fire callbacks deterministically.
type Clock interface {
	// AfterFunc waits for the duration to elapse and then calls f in its own goroutine.
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Timer represents a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the Timer from firing. It returns false if the call
	// already fired or was stopped.
	Stop() bool
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// AfterFunc implements Clock.AfterFunc using time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Now implements Clock.Now using time.Now.
func (RealClock) Now() time.Time {
	return time.Now()
}
