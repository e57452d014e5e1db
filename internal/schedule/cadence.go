package schedule

import "time"

// Cadence computes the delay from a sampled time to the next firing.
type Cadence interface {
	Next(now time.Time) time.Duration
}

// CadenceFunc adapts a function to Cadence.
type CadenceFunc func(now time.Time) time.Duration

// Next calls f.
func (f CadenceFunc) Next(now time.Time) time.Duration { return f(now) }

var (
	// MinuteBoundary fires at the start of every wall-clock minute.
	MinuteBoundary Cadence = CadenceFunc(NextMinuteDelay)
	// SecondBoundary fires at the start of every wall-clock second.
	SecondBoundary Cadence = CadenceFunc(NextSecondDelay)
)

// NextMinuteDelay is 60000 - (second*1000 + millisecond) milliseconds.
// Sub-millisecond precision is dropped, so the timer lands just after the boundary.
func NextMinuteDelay(now time.Time) time.Duration {
	elapsed := now.Second()*1000 + now.Nanosecond()/int(time.Millisecond)
	return time.Duration(60000-elapsed) * time.Millisecond
}

// NextSecondDelay is 1000 - millisecond milliseconds.
func NextSecondDelay(now time.Time) time.Duration {
	return time.Duration(1000-now.Nanosecond()/int(time.Millisecond)) * time.Millisecond
}

// Every is a fixed interval, independent of the wall clock.
type Every time.Duration

// Next returns the interval.
func (e Every) Next(time.Time) time.Duration { return time.Duration(e) }
