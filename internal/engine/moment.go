package engine

import (
	"strings"
	"time"
)

// Span is a byte range [Start, End) inside a narrative.
type Span struct {
	Start int
	End   int
}

// Moment is everything a display needs to render one minute.
type Moment struct {
	At        time.Time
	Phrase    TimePhrase
	Meridiem  string
	DayPart   string
	Narrative string

	// Highlight locates the time phrase inside Narrative. Nil when absent.
	Highlight *Span

	// Fallback is set when the narrator failed and a stock sentence was used.
	Fallback bool
}

// Label returns the phrase followed by its meridiem, e.g. "quarter past three PM".
func (m Moment) Label() string {
	return m.Phrase.Words + " " + m.Meridiem
}

// FindHighlight locates the first case-insensitive occurrence of the first
// matching needle. Needles are tried in order.
func FindHighlight(text string, needles ...string) *Span {
	// ASCII lowering keeps byte offsets aligned with text.
	lower := asciiLower(text)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if i := strings.Index(lower, asciiLower(n)); i >= 0 {
			return &Span{Start: i, End: i + len(n)}
		}
	}
	return nil
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
