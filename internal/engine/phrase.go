package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/go-artclock/internal/config"
)

// ErrInvalidTime is returned when the hour or minute is outside the clock face.
var ErrInvalidTime = errors.New(config.ErrInvalidTime)

// PhrasePolicy selects the optional special cases of the phrase generator.
type PhrasePolicy struct {
	// SpecialNames renders 00:00 as "Midnight" and 12:00 as "Noon".
	SpecialNames bool
	// Quarters renders :15, :30 and :45 as quarter/half phrases.
	Quarters bool
}

var (
	// PlainPolicy spells every time with the generic past/to rules.
	PlainPolicy = PhrasePolicy{}
	// PoeticPolicy enables Midnight/Noon and quarter/half phrases.
	PoeticPolicy = PhrasePolicy{SpecialNames: true, Quarters: true}
)

// PolicyForStyle maps a phrase style preference to its policy.
func PolicyForStyle(style string) (PhrasePolicy, error) {
	switch style {
	case config.StylePlain:
		return PlainPolicy, nil
	case config.StylePoetic:
		return PoeticPolicy, nil
	default:
		return PhrasePolicy{}, fmt.Errorf("%s: %q", config.ErrUnknownStyle, style)
	}
}

// TimePhrase is the natural-language rendering of one clock time.
type TimePhrase struct {
	Hour   int
	Minute int
	// Text is the capitalized phrase, e.g. "Quarter past three".
	Text string
	// Words is the same phrase in lower case, for use inside a sentence.
	Words string
}

// String returns the capitalized phrase.
func (p TimePhrase) String() string {
	return p.Text
}

// NewTimePhrase renders hour:minute under the given policy.
func NewTimePhrase(hour, minute int, policy PhrasePolicy) (TimePhrase, error) {
	words, err := TimeInWords(hour, minute, policy)
	if err != nil {
		return TimePhrase{}, err
	}
	return TimePhrase{
		Hour:   hour,
		Minute: minute,
		Text:   capitalize(words),
		Words:  words,
	}, nil
}

// TimeInWords returns the lower-case phrase for hour in [0,23] and minute in [0,59].
// Hour zero is spelled "zero" unless the Midnight special case applies.
func TimeInWords(hour, minute int, policy PhrasePolicy) (string, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}

	next := (hour + 1) % 24

	switch {
	case minute == 0:
		if policy.SpecialNames {
			switch hour {
			case 0:
				return config.WordMidnight, nil
			case 12:
				return config.WordNoon, nil
			}
		}
		return join(cardinal(hour), config.WordOClock), nil
	case policy.Quarters && minute == 15:
		return join(config.WordQuarter, config.WordPast, cardinal(hour)), nil
	case policy.Quarters && minute == 30:
		return join(config.WordHalf, config.WordPast, cardinal(hour)), nil
	case policy.Quarters && minute == 45:
		return join(config.WordQuarter, config.WordTo, cardinal(next)), nil
	case minute <= 30:
		return join(cardinal(minute), config.WordPast, cardinal(hour)), nil
	default:
		return join(cardinal(60-minute), config.WordTo, cardinal(next)), nil
	}
}

// Meridiem returns "AM" before noon and "PM" from noon on.
func Meridiem(hour int) string {
	if hour < 12 {
		return config.MeridiemAM
	}
	return config.MeridiemPM
}

func join(words ...string) string {
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
