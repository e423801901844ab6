package calendar

import "strings"

// NormalizeStatus lower-cases and trims a free-form booking status.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveStatus maps one day's inputs to its display status. Rules are
// evaluated in order and the first match wins:
//
//  1. a blocked weekday is always blocked, even with confirmed bookings
//  2. a booked or confirmed booking makes the day booked
//  3. an approved or tentative booking makes the day tentative
//  4. an explicit availability record with a known status
//  5. otherwise the day is not available
//
// Pending bookings never affect the result.
func ResolveStatus(bookings []Booking, availability *Availability, isBlocked bool) Status {
	if isBlocked {
		return StatusBlocked
	}

	if anyBookingIn(bookings, "booked", "confirmed") {
		return StatusBooked
	}

	if anyBookingIn(bookings, "approved", "tentative") {
		return StatusTentative
	}

	if availability != nil {
		switch Status(availability.Status) {
		case StatusNotAvailable:
			return StatusNotAvailable
		case StatusAvailable:
			return StatusAvailable
		case StatusBooked:
			return StatusBooked
		case StatusTentative:
			return StatusTentative
		}
	}

	return StatusNotAvailable
}

func anyBookingIn(bookings []Booking, statuses ...string) bool {
	for _, b := range bookings {
		status := NormalizeStatus(b.Status)
		for _, s := range statuses {
			if status == s {
				return true
			}
		}
	}
	return false
}
