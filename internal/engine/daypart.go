package engine

import "github.com/tartampluch/go-artclock/internal/config"

// DayPart labels a range of hours. End is exclusive.
// A range with Start > End wraps past midnight.
type DayPart struct {
	Start int
	End   int
	Label string
}

// Contains reports whether hour falls inside the range.
func (d DayPart) Contains(hour int) bool {
	if d.Start <= d.End {
		return d.Start <= hour && hour < d.End
	}
	return hour >= d.Start || hour < d.End
}

// DayParts is evaluated in order; the first match wins.
var DayParts = []DayPart{
	{5, 9, "morning awakening"},
	{9, 12, "productive hours"},
	{12, 14, "midday pause"},
	{14, 17, "afternoon flow"},
	{17, 20, "evening transition"},
	{20, 23, "night contemplation"},
	{23, 5, "liminal hours"},
}

// DayPartLabel returns the label of the first range containing hour,
// or config.DefaultDayPart when none does.
func DayPartLabel(parts []DayPart, hour int) string {
	for _, p := range parts {
		if p.Contains(hour) {
			return p.Label
		}
	}
	return config.DefaultDayPart
}
