package leave

import "time"

// DaysInclusive returns the whole-day span between start and end
// counting both endpoints, so start == end yields 1. Time-of-day and
// zone components are ignored; only the calendar dates matter. End
// dates before the start produce a non-positive count, which submission
// deliberately does not reject.
func DaysInclusive(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// YearOf buckets a request date into its entitlement year.
func YearOf(date time.Time) int {
	return dateOnly(date).Year()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
