package domain

import (
	"strings"
	"time"
)

// RecurrencePattern is a comma-separated set of weekday names
// ("Mon,Wed,Fri") or the sentinel "Daily". The empty pattern never matches.
type RecurrencePattern string

// PatternDaily matches every calendar day.
const PatternDaily RecurrencePattern = "Daily"

var weekdayNames = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

func (p RecurrencePattern) IsZero() bool { return strings.TrimSpace(string(p)) == "" }

// Days returns the set of weekdays named by the pattern. Unknown tokens are
// ignored. For "Daily" all seven weekdays are returned.
func (p RecurrencePattern) Days() map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, 7)
	if p == PatternDaily {
		for _, d := range weekdayNames {
			days[d] = true
		}
		return days
	}
	for _, tok := range strings.Split(string(p), ",") {
		if d, ok := weekdayNames[strings.TrimSpace(tok)]; ok {
			days[d] = true
		}
	}
	return days
}

// Matches reports whether the pattern fires on the given weekday.
// A pattern naming all seven days behaves exactly like "Daily".
func (p RecurrencePattern) Matches(day time.Weekday) bool {
	if p.IsZero() {
		return false
	}
	return p.Days()[day]
}

// Validate rejects patterns containing tokens that are neither a weekday
// abbreviation nor the "Daily" sentinel. The empty pattern is valid (it
// simply never expands).
func (p RecurrencePattern) Validate() error {
	if p.IsZero() || p == PatternDaily {
		return nil
	}
	for _, tok := range strings.Split(string(p), ",") {
		if _, ok := weekdayNames[strings.TrimSpace(tok)]; !ok {
			return NewValidationError("pattern", "unknown weekday "+strings.TrimSpace(tok))
		}
	}
	return nil
}
