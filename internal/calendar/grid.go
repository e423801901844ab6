package calendar

import (
	"sort"
	"time"
)

type GridInput struct {
	Dates           []time.Time
	Bookings        []Booking
	Availability    []Availability
	BlockedWeekdays []int
	Month           time.Month
	// Today defaults to the current date when zero.
	Today time.Time
}

// BuildGrid produces exactly one CalendarDay per input date, in input order.
func BuildGrid(in GridInput) []CalendarDay {
	today := in.Today
	if today.IsZero() {
		today = now()
	}
	todayString := FormatDate(today)

	ranged := rangedBookings(in.Bookings)
	availability := validAvailability(in.Availability)
	blocked := NewWeekdaySet(in.BlockedWeekdays)

	days := make([]CalendarDay, 0, len(in.Dates))
	for _, date := range in.Dates {
		dateString := FormatDate(date)

		bookings := make([]Booking, 0)
		for _, rb := range ranged {
			if rb.covers(dateString) {
				bookings = append(bookings, rb.booking)
			}
		}

		var record *Availability
		for i := range availability {
			if availability[i].Date == dateString {
				a := availability[i]
				record = &a
				break
			}
		}

		isBlocked := blocked.Has(DayOfWeek(date))

		days = append(days, CalendarDay{
			Date:           date,
			DateString:     dateString,
			IsCurrentMonth: date.Month() == in.Month,
			IsToday:        dateString == todayString,
			Status:         ResolveStatus(bookings, record, isBlocked),
			Bookings:       bookings,
			Availability:   record,
			IsBlocked:      isBlocked,
		})
	}

	return days
}

// BuildMonth builds the grid for every date of the given month.
func BuildMonth(year int, month time.Month, bookings []Booking, availability []Availability, blocked []int) []CalendarDay {
	return BuildGrid(GridInput{
		Dates:           DaysInMonth(year, month),
		Bookings:        bookings,
		Availability:    availability,
		BlockedWeekdays: blocked,
		Month:           month,
	})
}

// BookingCovers reports whether the booking's date range includes the
// given YYYY-MM-DD date. Bookings with a missing or malformed date never
// cover anything.
func BookingCovers(b Booking, dateString string) bool {
	rb, ok := toRanged(b)
	return ok && rb.covers(dateString)
}

type rangedBooking struct {
	booking Booking
	start   string
	end     string
}

// YYYY-MM-DD strings order the same way as the dates they name.
func (rb rangedBooking) covers(dateString string) bool {
	return dateString >= rb.start && dateString <= rb.end
}

func toRanged(b Booking) (rangedBooking, bool) {
	if b.RequestedDate == nil {
		return rangedBooking{}, false
	}
	start, err := ParseDate(*b.RequestedDate)
	if err != nil {
		return rangedBooking{}, false
	}

	end := start
	if b.EndDate != nil && *b.EndDate != "" {
		end, err = ParseDate(*b.EndDate)
		if err != nil {
			return rangedBooking{}, false
		}
	}

	return rangedBooking{booking: b, start: FormatDate(start), end: FormatDate(end)}, true
}

func rangedBookings(bookings []Booking) []rangedBooking {
	ranged := make([]rangedBooking, 0, len(bookings))
	for _, b := range bookings {
		if rb, ok := toRanged(b); ok {
			ranged = append(ranged, rb)
		}
	}

	sort.SliceStable(ranged, func(i, j int) bool {
		return ranged[i].booking.SortKey().Before(ranged[j].booking.SortKey())
	})
	return ranged
}

func validAvailability(records []Availability) []Availability {
	valid := make([]Availability, 0, len(records))
	for _, a := range records {
		d, err := ParseDate(a.Date)
		if err != nil {
			continue
		}
		a.Date = FormatDate(d)
		valid = append(valid, a)
	}
	return valid
}
