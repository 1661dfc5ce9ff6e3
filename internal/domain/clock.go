package domain

import "time"

// Callers identify their timezone as a minute offset east of UTC
// (e.g. +330 for IST). All "local day" reasoning in the engine derives
// from that offset; the store only ever sees UTC timestamps plus the
// derived YYYY-MM-DD local-date strings.

// LocalDateLayout is the wire and storage format of local calendar days.
const LocalDateLayout = "2006-01-02"

// LocalDate returns the calendar day of t in the caller's timezone.
func LocalDate(t time.Time, offsetMinutes int) string {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute).Format(LocalDateLayout)
}

// LocalWeekday returns the weekday of t in the caller's timezone.
func LocalWeekday(t time.Time, offsetMinutes int) time.Weekday {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute).Weekday()
}

// DayStartUTC returns the UTC instant at which the caller's local "today"
// began. Goals due strictly before this instant belong to past days.
func DayStartUTC(now time.Time, offsetMinutes int) time.Time {
	offset := time.Duration(offsetMinutes) * time.Minute
	local := now.UTC().Add(offset)
	localMidnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return localMidnight.Add(-offset)
}

// WholeDays returns the inclusive count of calendar days between the local
// dates of start and end. It is computed from the actual span, so leap
// years fall out correctly.
func WholeDays(start, end time.Time, offsetMinutes int) int {
	s, err := time.Parse(LocalDateLayout, LocalDate(start, offsetMinutes))
	if err != nil {
		return 0
	}
	e, err := time.Parse(LocalDateLayout, LocalDate(end, offsetMinutes))
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
