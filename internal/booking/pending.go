package booking

import (
	"sort"

	"trainercal/internal/calendar"
)

// AwaitingApproval returns the pending bookings only, oldest request first.
func AwaitingApproval(bookings []calendar.Booking) []calendar.Booking {
	pending := make([]calendar.Booking, 0)
	for _, b := range bookings {
		if calendar.NormalizeStatus(b.Status) == StatusPending {
			pending = append(pending, b)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending
}
