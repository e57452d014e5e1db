package schedule

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock records AfterFunc calls; tests fire them by hand.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{delay: d, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// last returns the most recent timer.
func (c *manualClock) last(t *testing.T) *manualTimer {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.pending, "no timer was armed")
	return c.pending[len(c.pending)-1]
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func ts(minute, second, milli int) time.Time {
	return time.Date(2025, 5, 1, 9, minute, second, milli*int(time.Millisecond), time.UTC)
}

func TestNextMinuteDelay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"Mid Minute", ts(0, 45, 500), 14500 * time.Millisecond},
		{"On Boundary", ts(0, 0, 0), time.Minute},
		{"Last Millisecond", ts(0, 59, 999), time.Millisecond},
		{"Sub Millisecond Dropped", ts(0, 30, 0).Add(400 * time.Microsecond), 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMinuteDelay(tt.now))
		})
	}
}

func TestNextSecondDelay(t *testing.T) {
	assert.Equal(t, 750*time.Millisecond, NextSecondDelay(ts(0, 10, 250)))
	assert.Equal(t, time.Second, NextSecondDelay(ts(0, 10, 0)))
}

func TestEvery(t *testing.T) {
	assert.Equal(t, 80*time.Millisecond, Every(80*time.Millisecond).Next(ts(0, 1, 2)))
}

func TestScheduler_StartArms(t *testing.T) {
	clock := &manualClock{now: ts(0, 45, 500)}
	s := New("test", clock, MinuteBoundary, func(time.Time) {})

	assert.Equal(t, Idle, s.State())
	s.Start()

	assert.Equal(t, Armed, s.State())
	assert.Equal(t, 14500*time.Millisecond, clock.last(t).delay)

	s.Start()
	assert.Equal(t, 1, clock.count(), "Start on an armed scheduler must not add a timer")
}

// TestScheduler_FireRearmsFromSample checks that a late firing schedules from the sampled time.
func TestScheduler_FireRearmsFromSample(t *testing.T) {
	clock := &manualClock{now: ts(0, 45, 500)}
	var ticks []time.Time
	s := New("test", clock, MinuteBoundary, func(now time.Time) { ticks = append(ticks, now) })
	s.Start()

	// The timer fires 20ms late.
	clock.set(ts(1, 0, 20))
	clock.last(t).f()

	require.Len(t, ticks, 1)
	assert.Equal(t, ts(1, 0, 20), ticks[0])
	assert.Equal(t, Armed, s.State())
	assert.Equal(t, 2, clock.count())
	assert.Equal(t, 59980*time.Millisecond, clock.last(t).delay)
}

func TestScheduler_StopReturnsToIdle(t *testing.T) {
	clock := &manualClock{now: ts(0, 0, 0)}
	var ticks int
	s := New("test", clock, MinuteBoundary, func(time.Time) { ticks++ })
	s.Start()

	timer := clock.last(t)
	s.Stop()

	assert.Equal(t, Idle, s.State())
	assert.True(t, timer.stopped)

	// A callback that raced with Stop must neither tick nor rearm.
	timer.f()
	assert.Zero(t, ticks)
	assert.Equal(t, 1, clock.count())
	assert.Equal(t, Idle, s.State())
}

func TestScheduler_StaleTimerAfterRestart(t *testing.T) {
	clock := &manualClock{now: ts(0, 0, 0)}
	var ticks int
	s := New("test", clock, SecondBoundary, func(time.Time) { ticks++ })

	s.Start()
	stale := clock.last(t)
	s.Stop()
	s.Start()
	require.Equal(t, 2, clock.count())

	stale.f()
	assert.Zero(t, ticks)
	assert.Equal(t, 2, clock.count(), "stale timer must not rearm")

	clock.last(t).f()
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 3, clock.count())
}

func TestScheduler_RealClock(t *testing.T) {
	var ticks atomic.Int32
	s := New("real", nil, Every(5*time.Millisecond), func(time.Time) { ticks.Add(1) })

	s.Start()
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
	s.Stop()

	assert.Equal(t, Idle, s.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "armed", Armed.String())
}
