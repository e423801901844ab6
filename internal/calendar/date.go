package calendar

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrMalformedDate = errors.New("malformed date")

// now is swapped in tests.
var now = time.Now

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string at local midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return d, nil
}

func IsSameDay(a, b time.Time) bool {
	return FormatDate(a) == FormatDate(b)
}

func IsToday(d time.Time) bool {
	return IsSameDay(d, now())
}

// DaysInMonth returns every date of the month in ascending order. Day 0 of
// the following month normalizes to the last day of this one.
func DaysInMonth(year int, month time.Month) []time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	days := make([]time.Time, 0, last)
	for day := 1; day <= last; day++ {
		days = append(days, time.Date(year, month, day, 0, 0, 0, 0, time.Local))
	}
	return days
}

// DateRange returns every date from start to end inclusive. It returns an
// empty slice when start is after end; callers validate ordering.
func DateRange(start, end time.Time) []time.Time {
	start = midnight(start)
	end = midnight(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func DayOfWeek(d time.Time) int {
	return int(d.Weekday())
}

func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
