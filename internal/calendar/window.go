package calendar

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("window start is after its end")

// Window is an inclusive range of calendar dates.
type Window struct {
	From time.Time
	To   time.Time
}

func MonthWindow(year int, month time.Month) Window {
	days := DaysInMonth(year, month)
	return Window{From: days[0], To: days[len(days)-1]}
}

func (w Window) Validate() error {
	if midnight(w.From).After(midnight(w.To)) {
		return ErrInvalidWindow
	}
	return nil
}

func (w Window) FromString() string { return FormatDate(w.From) }

func (w Window) ToString() string { return FormatDate(w.To) }

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return 0, 0, ErrMalformedDate
	}
	return t.Year(), t.Month(), nil
}
