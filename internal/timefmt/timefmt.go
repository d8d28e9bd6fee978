package timefmt

import "time"

const Invalid = "Invalid Date"

func parse(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders an ISO-8601 timestamp like "January 15, 2023, 10:30 AM"
// in loc. A nil loc means UTC.
func FormatDate(s string, loc *time.Location) string {
	t, ok := parse(s)
	if !ok {
		return Invalid
	}
	return t.In(orUTC(loc)).Format("January 2, 2006, 03:04 PM")
}

func FormatShortDate(s string, loc *time.Location) string {
	t, ok := parse(s)
	if !ok {
		return Invalid
	}
	return t.In(orUTC(loc)).Format("1/2/2006")
}

func FormatTime(s string, loc *time.Location) string {
	t, ok := parse(s)
	if !ok {
		return Invalid
	}
	return t.In(orUTC(loc)).Format("03:04 PM")
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
