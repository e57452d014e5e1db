package engine_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-artclock/internal/engine"
)

func newMoment(t *testing.T, hour, minute int) engine.Moment {
	t.Helper()
	p, err := engine.NewTimePhrase(hour, minute, engine.PoeticPolicy)
	require.NoError(t, err)
	return engine.Moment{
		At:       time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC),
		Phrase:   p,
		Meridiem: engine.Meridiem(hour),
	}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestStoryteller_Prompt(t *testing.T) {
	st := engine.NewStoryteller(nil, seeded())

	for i := 0; i < 20; i++ {
		prompt := st.Prompt("quarter past three", "PM", "afternoon flow")
		assert.Contains(t, prompt, "quarter past three PM")
		assert.True(t, strings.HasSuffix(prompt, "start with 'At quarter past three PM,'."), prompt)
		assert.NotContains(t, prompt, "%!")
	}
}

func TestStoryteller_Narrate_Success(t *testing.T) {
	narrator := new(MockNarrator)
	narrator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "quarter past fifteen PM") && strings.Contains(p, "afternoon flow")
	})).Return("  At quarter past fifteen PM, shadows stretch toward the door.\n", nil)

	st := engine.NewStoryteller(narrator, seeded())
	m := st.Narrate(context.Background(), newMoment(t, 15, 15))

	narrator.AssertExpectations(t)
	assert.False(t, m.Fallback)
	assert.Equal(t, "afternoon flow", m.DayPart)
	assert.Equal(t, "At quarter past fifteen PM, shadows stretch toward the door.", m.Narrative)
	require.NotNil(t, m.Highlight)
	assert.Equal(t, "quarter past fifteen PM", m.Narrative[m.Highlight.Start:m.Highlight.End])
}

// TestStoryteller_Narrate_Fallback verifies the displayed text still carries the phrase.
func TestStoryteller_Narrate_Fallback(t *testing.T) {
	narrator := new(MockNarrator)
	narrator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	st := engine.NewStoryteller(narrator, seeded())
	m := st.Narrate(context.Background(), newMoment(t, 0, 0))

	narrator.AssertExpectations(t)
	assert.True(t, m.Fallback)
	assert.True(t, strings.HasPrefix(m.Narrative, "At midnight AM,"), m.Narrative)
	assert.Equal(t, "liminal hours", m.DayPart)
	require.NotNil(t, m.Highlight)
	assert.Equal(t, "midnight AM", m.Narrative[m.Highlight.Start:m.Highlight.End])
}

func TestStoryteller_Narrate_NoNarrator(t *testing.T) {
	st := engine.NewStoryteller(nil, seeded())
	m := st.Narrate(context.Background(), newMoment(t, 9, 45))

	assert.True(t, m.Fallback)
	assert.Contains(t, m.Narrative, "quarter to ten AM")
}

// TestStoryteller_Narrate_Timeout ensures a hung backend cannot hold the moment hostage.
func TestStoryteller_Narrate_Timeout(t *testing.T) {
	narrator := new(MockNarrator)
	narrator.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded)

	st := engine.NewStoryteller(narrator, seeded())
	st.Timeout = 20 * time.Millisecond

	start := time.Now()
	m := st.Narrate(context.Background(), newMoment(t, 12, 0))

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, m.Fallback)
	assert.Contains(t, m.Narrative, "noon PM")
}

func TestStoryteller_Fallback_AlwaysEmbedsPhrase(t *testing.T) {
	st := engine.NewStoryteller(nil, seeded())
	for i := 0; i < 20; i++ {
		assert.True(t, strings.HasPrefix(st.Fallback("ten to four", "AM"), "At ten to four AM, "))
	}
}
