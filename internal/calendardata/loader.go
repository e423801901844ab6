package calendardata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"trainercal/internal/booking"
	"trainercal/internal/calendar"
	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

var ErrFetchFailed = errors.New("failed to fetch calendar data")

const (
	resourceBookingRequests = "booking_requests"
	resourceEvents          = "events"
	resourceAvailability    = "availability"
	resourceBlockedWeekdays = "blocked_weekdays"
)

// Snapshot is one trainer's computed calendar for one month.
type Snapshot struct {
	TrainerID        int                    `json:"trainer_id"`
	Year             int                    `json:"year"`
	Month            time.Month             `json:"month"`
	Days             []calendar.CalendarDay `json:"days"`
	Counts           calendar.FilterCounts  `json:"counts"`
	AwaitingApproval []calendar.Booking     `json:"awaiting_approval"`
	BlockedDates     []string               `json:"blocked_dates"`
}

// Filtered returns a copy of the snapshot whose days match filter. Counts
// always describe the whole month.
func (s Snapshot) Filtered(filter string) Snapshot {
	s.Days = calendar.FilterDays(s.Days, filter)
	return s
}

type Loader struct {
	source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load fetches the four calendar resources concurrently and builds the
// month. It waits for every fetch and fails as a whole when any of them
// fails.
func (l *Loader) Load(ctx context.Context, trainerID, year int, month time.Month) (*Snapshot, error) {
	window := calendar.MonthWindow(year, month)

	var (
		requests []booking.Request
		evts     []booking.Event
		records  []calendar.Availability
		weekdays []int
	)

	var g errgroup.Group
	fetch := func(resource string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				metrics.RecordFetchFailure(resource)
				return fmt.Errorf("%s: %w", resource, err)
			}
			return nil
		})
	}

	fetch(resourceBookingRequests, func() (err error) {
		requests, err = l.source.BookingRequests(ctx, trainerID, window)
		return err
	})
	fetch(resourceEvents, func() (err error) {
		evts, err = l.source.Events(ctx, trainerID, window)
		return err
	})
	fetch(resourceAvailability, func() (err error) {
		records, err = l.source.Availability(ctx, trainerID, window)
		return err
	})
	fetch(resourceBlockedWeekdays, func() (err error) {
		weekdays, err = l.source.BlockedWeekdays(ctx, trainerID)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.RecordCalendarLoad("error")
		logger.Error("Calendar load failed", "trainer_id", trainerID, "month", window.FromString()[:7], "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	requestBookings := booking.FromRequests(requests)
	bookings := append(requestBookings, booking.FromEvents(evts)...)
	days := calendar.BuildMonth(year, month, bookings, records, weekdays)

	metrics.RecordCalendarLoad("ok")
	return &Snapshot{
		TrainerID:        trainerID,
		Year:             year,
		Month:            month,
		Days:             days,
		Counts:           calendar.CountByStatus(days),
		AwaitingApproval: booking.AwaitingApproval(requestBookings),
		BlockedDates:     formatDates(calendar.ExpandBlockedWeekdays(window.From, window.To, weekdays)),
	}, nil
}

// BlockedDates expands the trainer's blocked weekdays over window.
func (l *Loader) BlockedDates(ctx context.Context, trainerID int, window calendar.Window) ([]string, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	weekdays, err := l.source.BlockedWeekdays(ctx, trainerID)
	if err != nil {
		metrics.RecordFetchFailure(resourceBlockedWeekdays)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return formatDates(calendar.ExpandBlockedWeekdays(window.From, window.To, weekdays)), nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, calendar.FormatDate(d))
	}
	return out
}
