package engine_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-artclock/internal/engine"
	"github.com/tartampluch/go-artclock/internal/schedule"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, second, 0, time.UTC)
}

func TestRefresher_PlainMode(t *testing.T) {
	display := &RecordingDisplay{}
	r := engine.NewRefresher(&MockClock{CurrentTime: at(3, 0, 0)}, display, engine.RefreshConfig{
		Location: time.UTC,
		Policy:   engine.PlainPolicy,
	})

	r.Tick(context.Background())
	r.Wait()

	clocks, moments := display.snapshot()
	assert.Empty(t, clocks, "plain mode has no digital display")
	require.Len(t, moments, 1)

	m := moments[0]
	assert.Equal(t, "Three o'clock", m.Narrative)
	assert.Equal(t, "AM", m.Meridiem)
	require.NotNil(t, m.Highlight)
	assert.Equal(t, engine.Span{Start: 0, End: len("Three o'clock")}, *m.Highlight)
}

// TestRefresher_EveryTickRecomputesWithoutDetection covers the minute-cadence modes.
func TestRefresher_EveryTickRecomputesWithoutDetection(t *testing.T) {
	display := &RecordingDisplay{}
	r := engine.NewRefresher(schedule.RealClock{}, display, engine.RefreshConfig{Location: time.UTC})

	r.TickAt(context.Background(), at(3, 0, 0))
	r.TickAt(context.Background(), at(3, 0, 30))

	_, moments := display.snapshot()
	assert.Len(t, moments, 2)
}

func TestRefresher_Location(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	display := &RecordingDisplay{}
	r := engine.NewRefresher(schedule.RealClock{}, display, engine.RefreshConfig{
		Location: ny,
		Policy:   engine.PoeticPolicy,
	})

	// 15:30 UTC in January is 10:30 EST.
	r.TickAt(context.Background(), time.Date(2025, 1, 15, 15, 30, 0, 0, time.UTC))

	_, moments := display.snapshot()
	require.Len(t, moments, 1)
	assert.Equal(t, "Half past ten", moments[0].Phrase.Text)
	assert.Equal(t, "AM", moments[0].Meridiem)
	assert.Equal(t, ny, moments[0].At.Location())
}

// TestRefresher_MinuteChangeDetection mirrors installation mode: a second-cadence tick
// updates the digital display every time but composes once per minute.
func TestRefresher_MinuteChangeDetection(t *testing.T) {
	narrator := new(MockNarrator)
	narrator.On("Generate", mock.Anything, mock.Anything).Return("At some point, something happened.", nil)

	display := &RecordingDisplay{}
	r := engine.NewRefresher(schedule.RealClock{}, display, engine.RefreshConfig{
		Location:       time.UTC,
		Policy:         engine.PoeticPolicy,
		Storyteller:    engine.NewStoryteller(narrator, seeded()),
		DigitalClock:   true,
		OnMinuteChange: true,
	})

	ctx := context.Background()
	r.TickAt(ctx, at(10, 15, 1))
	r.Wait()
	r.TickAt(ctx, at(10, 15, 2))
	r.TickAt(ctx, at(10, 15, 3))
	r.Wait()
	r.TickAt(ctx, at(10, 16, 0))
	r.Wait()

	clocks, moments := display.snapshot()
	assert.Len(t, clocks, 4)
	require.Len(t, moments, 2)
	assert.Equal(t, "Quarter past ten", moments[0].Phrase.Text)
	assert.Equal(t, "Sixteen past ten", moments[1].Phrase.Text)
	narrator.AssertNumberOfCalls(t, "Generate", 2)
}

func TestRefresher_Force(t *testing.T) {
	clock := &MockClock{CurrentTime: at(22, 40, 10)}
	display := &RecordingDisplay{}
	r := engine.NewRefresher(clock, display, engine.RefreshConfig{
		Location:       time.UTC,
		DigitalClock:   true,
		OnMinuteChange: true,
	})

	ctx := context.Background()
	r.Tick(ctx)
	clock.Set(at(22, 40, 20))
	r.Tick(ctx)
	r.Force(ctx)

	clocks, moments := display.snapshot()
	assert.Len(t, clocks, 3)
	assert.Len(t, moments, 2, "forced refresh must compose even within the same minute")
}

// blockingNarrator holds prompts containing block until release is closed.
type blockingNarrator struct {
	block   string
	release chan struct{}
}

func (b *blockingNarrator) Name() string { return "blocking" }

func (b *blockingNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, b.block) {
		<-b.release
		return "At " + b.block + ", a stale thought arrives.", nil
	}
	return "A fresh thought arrives.", nil
}

// TestRefresher_StaleNarrativeDiscarded ensures a slow narrative never overwrites a newer minute.
func TestRefresher_StaleNarrativeDiscarded(t *testing.T) {
	narrator := &blockingNarrator{block: "quarter past ten", release: make(chan struct{})}
	display := &RecordingDisplay{}
	r := engine.NewRefresher(schedule.RealClock{}, display, engine.RefreshConfig{
		Location:       time.UTC,
		Policy:         engine.PoeticPolicy,
		Storyteller:    engine.NewStoryteller(narrator, seeded()),
		OnMinuteChange: true,
	})

	ctx := context.Background()
	r.TickAt(ctx, at(10, 15, 0))
	r.TickAt(ctx, at(10, 16, 0))

	require.Eventually(t, func() bool {
		_, moments := display.snapshot()
		return len(moments) == 1
	}, 2*time.Second, 5*time.Millisecond)

	close(narrator.release)
	r.Wait()

	_, moments := display.snapshot()
	require.Len(t, moments, 1)
	assert.Equal(t, "Sixteen past ten", moments[0].Phrase.Text)
	assert.Equal(t, "A fresh thought arrives.", moments[0].Narrative)
}

func TestRefresher_ConfigureInvalidatesInFlight(t *testing.T) {
	narrator := &blockingNarrator{block: "noon", release: make(chan struct{})}
	display := &RecordingDisplay{}
	r := engine.NewRefresher(schedule.RealClock{}, display, engine.RefreshConfig{
		Location:    time.UTC,
		Policy:      engine.PoeticPolicy,
		Storyteller: engine.NewStoryteller(narrator, seeded()),
	})

	r.TickAt(context.Background(), at(12, 0, 0))
	r.Configure(engine.RefreshConfig{Location: time.UTC, Policy: engine.PlainPolicy})

	close(narrator.release)
	r.Wait()

	_, moments := display.snapshot()
	assert.Empty(t, moments)

	r.TickAt(context.Background(), at(12, 0, 0))
	_, moments = display.snapshot()
	require.Len(t, moments, 1)
	assert.Equal(t, "Twelve o'clock", moments[0].Narrative)
}
