package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-artclock/internal/config"
)

// Clock reports wall time; schedule.RealClock satisfies it.
type Clock interface {
	Now() time.Time
}

// Display is the surface a Refresher renders to.
// Implementations must not call back into the Refresher.
type Display interface {
	// ShowClock updates the digital sub-display.
	ShowClock(now time.Time)
	// ShowMoment replaces the phrase and narrative.
	ShowMoment(m Moment)
}

// RefreshConfig describes one display mode.
type RefreshConfig struct {
	Location *time.Location
	Policy   PhrasePolicy

	// Storyteller is nil in plain mode; the narrative is then the phrase itself.
	Storyteller *Storyteller

	// DigitalClock calls Display.ShowClock on every tick.
	DigitalClock bool

	// OnMinuteChange recomputes the moment only when the observed minute changed.
	OnMinuteChange bool
}

// Refresher is the per-tick step driven by a scheduler.
// Tick is safe to call from timer goroutines; narratives are generated off the
// calling goroutine and only the newest one reaches the Display.
type Refresher struct {
	Clock   Clock
	Display Display

	mu         sync.Mutex
	cfg        RefreshConfig
	lastMinute int
	seq        uint64

	inflight sync.WaitGroup
}

// NewRefresher creates a Refresher that will compose on its first tick.
func NewRefresher(clock Clock, display Display, cfg RefreshConfig) *Refresher {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Refresher{
		Clock:      clock,
		Display:    display,
		cfg:        cfg,
		lastMinute: -1,
	}
}

// Configure swaps the display mode. In-flight narratives become stale and
// the next tick composes a fresh moment.
func (r *Refresher) Configure(cfg RefreshConfig) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	r.mu.Lock()
	r.cfg = cfg
	r.lastMinute = -1
	r.seq++
	r.mu.Unlock()
}

// Force resets the minute marker and ticks immediately.
func (r *Refresher) Force(ctx context.Context) {
	slog.Info(config.MsgForceRefresh, config.LogKeyComponent, config.CompEngine)
	r.mu.Lock()
	r.lastMinute = -1
	r.mu.Unlock()
	r.Tick(ctx)
}

// Tick samples the clock once and updates the display.
func (r *Refresher) Tick(ctx context.Context) {
	r.TickAt(ctx, r.Clock.Now())
}

// TickAt runs one refresh cycle for a time sampled by the caller.
func (r *Refresher) TickAt(ctx context.Context, now time.Time) {
	r.mu.Lock()
	cfg := r.cfg
	local := now.In(cfg.Location)
	changed := !cfg.OnMinuteChange || local.Minute() != r.lastMinute
	if changed {
		r.lastMinute = local.Minute()
		r.seq++
	}
	seq := r.seq
	r.mu.Unlock()

	if cfg.DigitalClock {
		r.Display.ShowClock(local)
	}
	if !changed {
		return
	}

	phrase, err := NewTimePhrase(local.Hour(), local.Minute(), cfg.Policy)
	if err != nil {
		// Unreachable for a time.Time, kept for the contract.
		slog.Error(config.ErrInvalidTime,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyError, err)
		return
	}

	m := Moment{
		At:       local,
		Phrase:   phrase,
		Meridiem: Meridiem(local.Hour()),
	}

	slog.Debug(config.MsgMinuteChanged,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyPhrase, phrase.Text,
		config.LogKeySeq, seq,
	)

	if cfg.Storyteller == nil {
		m.DayPart = DayPartLabel(DayParts, local.Hour())
		m.Narrative = phrase.Text
		m.Highlight = &Span{Start: 0, End: len(phrase.Text)}
		r.publish(seq, m)
		return
	}

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.publish(seq, cfg.Storyteller.Narrate(ctx, m))
	}()
}

// Wait blocks until every in-flight narrative has been published or discarded.
func (r *Refresher) Wait() {
	r.inflight.Wait()
}

// publish hands m to the display unless a newer cycle has started since.
// The lock is held across ShowMoment so displays observe moments in order.
func (r *Refresher) publish(seq uint64, m Moment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq {
		slog.Debug(config.MsgNarrativeStale,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeySeq, seq,
		)
		return
	}
	r.Display.ShowMoment(m)
}
