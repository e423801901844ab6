package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trainercal/internal/calendar"
)

var ErrRequestNotFoundOrChanged = errors.New("booking request not found or status already changed")

const requestColumns = `
		id, trainer_id, client_name, course_title, status,
		to_char(requested_date, 'YYYY-MM-DD') AS requested_date,
		to_char(end_date, 'YYYY-MM-DD') AS end_date,
		notes, processed_at, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRequests(ctx context.Context, trainerID int, window calendar.Window) ([]Request, error) {
	query := `
		SELECT` + requestColumns + `
		FROM booking_requests
		WHERE trainer_id = $1
			AND requested_date <= $3
			AND COALESCE(end_date, requested_date) >= $2
		ORDER BY created_at ASC
	`

	requests := []Request{}
	err := r.db.SelectContext(ctx, &requests, query, trainerID, window.FromString(), window.ToString())
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) ListAllRequests(ctx context.Context, trainerID int) ([]Request, error) {
	query := `
		SELECT` + requestColumns + `
		FROM booking_requests
		WHERE trainer_id = $1
		ORDER BY created_at ASC
	`

	requests := []Request{}
	err := r.db.SelectContext(ctx, &requests, query, trainerID)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) GetRequestByID(ctx context.Context, id int) (*Request, error) {
	query := `
		SELECT` + requestColumns + `
		FROM booking_requests
		WHERE id = $1
	`

	var req Request
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// UpdateRequestStatus moves a request from fromStatus to toStatus and
// stamps processed_at. It fails when the request is no longer in fromStatus.
func (r *repository) UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (*Request, error) {
	query := `
		UPDATE booking_requests
		SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING` + requestColumns

	var req Request
	err := r.db.GetContext(ctx, &req, query, toStatus, id, fromStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFoundOrChanged
		}
		return nil, err
	}

	return &req, nil
}

func (r *repository) ListEvents(ctx context.Context, trainerID int, window calendar.Window) ([]Event, error) {
	query := `
		SELECT
			id, trainer_id, title, status,
			to_char(event_date, 'YYYY-MM-DD') AS event_date,
			to_char(start_date, 'YYYY-MM-DD') AS start_date,
			to_char(end_date, 'YYYY-MM-DD') AS end_date,
			created_at, updated_at
		FROM events
		WHERE trainer_id = $1
			AND COALESCE(event_date, start_date) <= $3
			AND COALESCE(end_date, event_date, start_date) >= $2
		ORDER BY created_at ASC
	`

	events := []Event{}
	err := r.db.SelectContext(ctx, &events, query, trainerID, window.FromString(), window.ToString())
	if err != nil {
		return nil, err
	}

	return events, nil
}
