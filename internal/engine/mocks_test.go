package engine_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-artclock/internal/engine"
)

// MockNarrator simulates a text-generation backend using `testify/mock`.
type MockNarrator struct {
	mock.Mock
}

// Generate implements the engine.Narrator interface.
func (m *MockNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Name implements the engine.Narrator interface.
func (m *MockNarrator) Name() string {
	return "mock"
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.CurrentTime = t
	m.mu.Unlock()
}

// RecordingDisplay captures what a Refresher renders.
type RecordingDisplay struct {
	mu      sync.Mutex
	Clocks  []time.Time
	Moments []engine.Moment
}

func (d *RecordingDisplay) ShowClock(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Clocks = append(d.Clocks, now)
}

func (d *RecordingDisplay) ShowMoment(m engine.Moment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Moments = append(d.Moments, m)
}

func (d *RecordingDisplay) snapshot() ([]time.Time, []engine.Moment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Time(nil), d.Clocks...), append([]engine.Moment(nil), d.Moments...)
}
