package availability

import (
	"context"

	"trainercal/internal/calendar"
)

type Repository interface {
	List(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error)
	Upsert(ctx context.Context, a calendar.Availability) (*calendar.Availability, error)
	BulkUpsert(ctx context.Context, records []calendar.Availability) error
	GetBlockedWeekdays(ctx context.Context, trainerID int) ([]int, error)
	ReplaceBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) error
}
