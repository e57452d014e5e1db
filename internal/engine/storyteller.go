package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tartampluch/go-artclock/internal/config"
)

// Storyteller wraps a Narrator with prompt selection and a stock-sentence fallback.
// Narrate never fails: the returned Moment always carries a sentence with the phrase.
type Storyteller struct {
	Narrator Narrator
	DayParts []DayPart
	Timeout  time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

// NewStoryteller creates a Storyteller with the default day parts and timeout.
// A nil narrator is allowed; every sentence then comes from the fallbacks.
func NewStoryteller(n Narrator, r *rand.Rand) *Storyteller {
	if r == nil {
		r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Storyteller{
		Narrator: n,
		DayParts: DayParts,
		Timeout:  config.NarrativeTimeout,
		rand:     r,
	}
}

// Prompt builds the narrator prompt for a phrase.
func (s *Storyteller) Prompt(words, meridiem, dayPart string) string {
	tmpl := config.NarrativePrompts[s.pick(len(config.NarrativePrompts))]
	return fmt.Sprintf(tmpl, words, meridiem, dayPart) +
		fmt.Sprintf(config.NarrativePromptSuffix, words, meridiem)
}

// Fallback returns a stock sentence embedding the phrase.
func (s *Storyteller) Fallback(words, meridiem string) string {
	tmpl := config.NarrativeFallbacks[s.pick(len(config.NarrativeFallbacks))]
	return fmt.Sprintf(tmpl, words, meridiem)
}

// Narrate fills the narrative fields of m.
func (s *Storyteller) Narrate(ctx context.Context, m Moment) Moment {
	m.DayPart = DayPartLabel(s.DayParts, m.Phrase.Hour)

	text, err := s.generate(ctx, m)
	if err != nil {
		slog.Warn(config.MsgNarrativeFailed,
			config.LogKeyComponent, config.CompNarrator,
			config.LogKeyPhrase, m.Phrase.Text,
			config.LogKeyError, err,
		)
		text = s.Fallback(m.Phrase.Words, m.Meridiem)
		m.Fallback = true
	}

	m.Narrative = text
	m.Highlight = FindHighlight(text, m.Label(), m.Phrase.Words)
	return m
}

func (s *Storyteller) generate(ctx context.Context, m Moment) (string, error) {
	if s.Narrator == nil {
		return "", fmt.Errorf("%s: %s", config.ErrNarratorFailed, config.BackendNone)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.Narrator.Generate(ctx, s.Prompt(m.Phrase.Words, m.Meridiem, m.DayPart))
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrNarratorFailed, err)
	}

	slog.Debug(config.MsgNarrativeReady,
		config.LogKeyComponent, config.CompNarrator,
		config.LogKeyBackend, s.Narrator.Name(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (s *Storyteller) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.IntN(n)
}
