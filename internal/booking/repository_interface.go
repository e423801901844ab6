package booking

import (
	"context"

	"trainercal/internal/calendar"
)

type Repository interface {
	ListRequests(ctx context.Context, trainerID int, window calendar.Window) ([]Request, error)
	ListAllRequests(ctx context.Context, trainerID int) ([]Request, error)
	GetRequestByID(ctx context.Context, id int) (*Request, error)
	UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (*Request, error)
	ListEvents(ctx context.Context, trainerID int, window calendar.Window) ([]Event, error)
}
