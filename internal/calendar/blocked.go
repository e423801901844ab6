package calendar

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

// WeekdaySet is a recurring set of blocked weekdays, 0 = Sunday.
type WeekdaySet map[int]struct{}

func NewWeekdaySet(weekdays []int) WeekdaySet {
	set := make(WeekdaySet, len(weekdays))
	for _, wd := range weekdays {
		set[wd] = struct{}{}
	}
	return set
}

func (s WeekdaySet) Has(weekday int) bool {
	_, ok := s[weekday]
	return ok
}

// Sorted returns the weekdays in ascending order.
func (s WeekdaySet) Sorted() []int {
	out := make([]int, 0, len(s))
	for wd := range s {
		out = append(out, wd)
	}
	sort.Ints(out)
	return out
}

func ValidateWeekdays(weekdays []int) error {
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}

// ExpandBlockedWeekdays returns the dates in [start, end] whose weekday is
// blocked, ascending.
func ExpandBlockedWeekdays(start, end time.Time, weekdays []int) []time.Time {
	set := NewWeekdaySet(weekdays)
	if len(set) == 0 {
		return []time.Time{}
	}

	dates := make([]time.Time, 0)
	for _, d := range DateRange(start, end) {
		if set.Has(DayOfWeek(d)) {
			dates = append(dates, d)
		}
	}
	return dates
}
