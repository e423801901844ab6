package availability

import (
	"context"
	"errors"

	"trainercal/internal/calendar"
	"trainercal/internal/events"
	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

// MaxBulkDays is the longest range a single bulk update may cover.
const MaxBulkDays = 366

var (
	ErrInvalidStatus = errors.New("invalid availability status")
	ErrRangeTooLong  = errors.New("bulk range may cover at most 366 days")
)

type Service interface {
	List(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error)
	Set(ctx context.Context, trainerID int, req SetRequest) (*calendar.Availability, error)
	BulkSet(ctx context.Context, trainerID int, req BulkRequest) (int, error)
	BlockedWeekdays(ctx context.Context, trainerID int) ([]int, error)
	SetBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) ([]int, error)
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

func (s *service) List(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, trainerID, window)
}

func (s *service) Set(ctx context.Context, trainerID int, req SetRequest) (*calendar.Availability, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	status, err := recordStatus(req.Status)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, calendar.Availability{
		TrainerID: trainerID,
		Date:      calendar.FormatDate(date),
		Status:    status,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, err
	}

	s.changed(ctx, trainerID, "availability", "date", saved.Date, "status", saved.Status)
	return saved, nil
}

// BulkSet applies one status to every date of an inclusive range. The
// range is validated and capped at MaxBulkDays before it is expanded.
func (s *service) BulkSet(ctx context.Context, trainerID int, req BulkRequest) (int, error) {
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return 0, err
	}
	if err := (calendar.Window{From: start, To: end}).Validate(); err != nil {
		return 0, err
	}
	if end.After(start.AddDate(0, 0, MaxBulkDays-1)) {
		return 0, ErrRangeTooLong
	}
	status, err := recordStatus(req.Status)
	if err != nil {
		return 0, err
	}

	dates := calendar.DateRange(start, end)
	records := make([]calendar.Availability, 0, len(dates))
	for _, d := range dates {
		records = append(records, calendar.Availability{
			TrainerID: trainerID,
			Date:      calendar.FormatDate(d),
			Status:    status,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
	}

	if err := s.repo.BulkUpsert(ctx, records); err != nil {
		return 0, err
	}

	s.changed(ctx, trainerID, "availability_bulk", "from", req.StartDate, "to", req.EndDate, "days", len(records))
	return len(records), nil
}

func (s *service) BlockedWeekdays(ctx context.Context, trainerID int) ([]int, error) {
	return s.repo.GetBlockedWeekdays(ctx, trainerID)
}

func (s *service) SetBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) ([]int, error) {
	if err := calendar.ValidateWeekdays(weekdays); err != nil {
		return nil, err
	}

	unique := calendar.NewWeekdaySet(weekdays).Sorted()
	if err := s.repo.ReplaceBlockedWeekdays(ctx, trainerID, unique); err != nil {
		return nil, err
	}

	s.changed(ctx, trainerID, "blocked_weekdays", "weekdays", unique)
	return unique, nil
}

func (s *service) changed(ctx context.Context, trainerID int, reason string, attrs ...any) {
	logger.Info("Trainer calendar updated", append([]any{"trainer_id", trainerID, "reason", reason}, attrs...)...)
	metrics.RecordMutation(reason)
	s.publisher.PublishCalendarChanged(ctx, events.CalendarChanged{
		TrainerID: trainerID,
		Reason:    reason,
	})
}

// recordStatus accepts the statuses an availability record may carry.
// Blocked days come from blocked weekdays only.
func recordStatus(s string) (string, error) {
	status := calendar.Status(calendar.NormalizeStatus(s))
	if !status.Valid() || status == calendar.StatusBlocked {
		return "", ErrInvalidStatus
	}
	return string(status), nil
}
