package schedule

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-artclock/internal/config"
)

// State is the scheduler's lifecycle position.
type State int

const (
	// Idle means no callback is pending.
	Idle State = iota
	// Armed means exactly one callback is pending.
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// Scheduler keeps exactly one deferred callback pending while armed.
// Each firing samples the clock, rearms from that sample, then runs the tick,
// so the period tracks the wall clock rather than the timer's own drift.
type Scheduler struct {
	name    string
	clock   Clock
	cadence Cadence
	tick    func(now time.Time)

	mu    sync.Mutex
	state State
	timer Timer
	gen   uint64
}

// New creates an idle scheduler. Name only appears in logs.
func New(name string, clock Clock, cadence Cadence, tick func(now time.Time)) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		name:    name,
		clock:   clock,
		cadence: cadence,
		tick:    tick,
	}
}

// Start arms the scheduler. It is a no-op when already armed.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Armed {
		return
	}
	s.state = Armed
	s.gen++
	delay := s.armLocked(s.clock.Now(), s.gen)

	slog.Debug(config.MsgSchedulerArmed,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyKey, s.name,
		config.LogKeyDelay, delay.Milliseconds(),
	)
}

// Stop cancels the pending callback and returns to idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = Idle

	slog.Debug(config.MsgSchedulerStop,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyKey, s.name,
	)
}

// State reports whether a callback is pending.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) armLocked(now time.Time, gen uint64) time.Duration {
	delay := s.cadence.Next(now)
	s.timer = s.clock.AfterFunc(delay, func() { s.fire(gen) })
	return delay
}

func (s *Scheduler) fire(gen uint64) {
	now := s.clock.Now()

	s.mu.Lock()
	// A timer that lost a race with Stop (or Stop then Start) must not rearm.
	if s.state != Armed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.armLocked(now, gen)
	s.mu.Unlock()

	s.tick(now)
}
