package booking

import (
	"context"
	"database/sql"
	"errors"

	"trainercal/internal/calendar"
	"trainercal/internal/events"
	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

var (
	ErrRequestNotFound   = errors.New("booking request not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// transitions lists the statuses each status may move to.
var transitions = map[string][]string{
	StatusPending:   {StatusApproved, StatusDenied},
	StatusApproved:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[calendar.NormalizeStatus(from)] {
		if s == calendar.NormalizeStatus(to) {
			return true
		}
	}
	return false
}

type Service interface {
	ListRequests(ctx context.Context, trainerID int, window calendar.Window) ([]Request, error)
	ListEvents(ctx context.Context, trainerID int, window calendar.Window) ([]Event, error)
	PendingRequests(ctx context.Context, trainerID int) ([]calendar.Booking, error)
	GetRequest(ctx context.Context, id int) (*Request, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Request, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
}

func NewService(repo Repository, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *service) ListRequests(ctx context.Context, trainerID int, window calendar.Window) ([]Request, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListRequests(ctx, trainerID, window)
}

func (s *service) ListEvents(ctx context.Context, trainerID int, window calendar.Window) ([]Event, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, trainerID, window)
}

func (s *service) PendingRequests(ctx context.Context, trainerID int) ([]calendar.Booking, error) {
	requests, err := s.repo.ListAllRequests(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return AwaitingApproval(FromRequests(requests)), nil
}

func (s *service) GetRequest(ctx context.Context, id int) (*Request, error) {
	req, err := s.repo.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int, status string) (*Request, error) {
	current, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateRequestStatus(ctx, id, current.Status, calendar.NormalizeStatus(status))
	if err != nil {
		return nil, err
	}

	logger.Info("Booking request status changed",
		"request_id", id,
		"trainer_id", updated.TrainerID,
		"from", current.Status,
		"to", updated.Status,
	)
	metrics.RecordMutation("booking_status")
	s.publisher.PublishCalendarChanged(ctx, events.CalendarChanged{
		TrainerID: updated.TrainerID,
		Reason:    "booking_status",
	})

	return updated, nil
}
