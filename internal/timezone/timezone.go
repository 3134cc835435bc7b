package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WireLayout is how instants leave the API: ISO-8601 in UTC with milliseconds.
const WireLayout = "2006-01-02T15:04:05.000Z07:00"

// DayBounds turns a calendar date (YYYY-MM-DD, month 1-based) into the
// half-open UTC range [date 00:00, date+1 00:00).
func DayBounds(date string) (time.Time, time.Time, error) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", date)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date %q: bad year", date)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("date %q: bad month", date)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, time.Time{}, fmt.Errorf("date %q: bad day", date)
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseInstant accepts RFC 3339 timestamps (with or without fractional
// seconds) and normalizes them to UTC at millisecond resolution, which is what
// the document store keeps.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func Format(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
