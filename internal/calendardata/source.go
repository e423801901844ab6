package calendardata

import (
	"context"

	"trainercal/internal/availability"
	"trainercal/internal/booking"
	"trainercal/internal/calendar"
)

// Source fetches the raw calendar resources of one trainer.
type Source interface {
	BookingRequests(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Request, error)
	Events(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Event, error)
	Availability(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error)
	BlockedWeekdays(ctx context.Context, trainerID int) ([]int, error)
}

// RepositorySource reads straight from the database.
type RepositorySource struct {
	bookings     booking.Repository
	availability availability.Repository
}

func NewRepositorySource(bookings booking.Repository, availability availability.Repository) *RepositorySource {
	return &RepositorySource{
		bookings:     bookings,
		availability: availability,
	}
}

func (s *RepositorySource) BookingRequests(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Request, error) {
	return s.bookings.ListRequests(ctx, trainerID, window)
}

func (s *RepositorySource) Events(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Event, error) {
	return s.bookings.ListEvents(ctx, trainerID, window)
}

func (s *RepositorySource) Availability(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error) {
	return s.availability.List(ctx, trainerID, window)
}

func (s *RepositorySource) BlockedWeekdays(ctx context.Context, trainerID int) ([]int, error) {
	return s.availability.GetBlockedWeekdays(ctx, trainerID)
}
