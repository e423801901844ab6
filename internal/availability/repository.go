package availability

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trainercal/internal/calendar"
	"trainercal/internal/db"
)

const availabilityColumns = `
		id, trainer_id, to_char(date, 'YYYY-MM-DD') AS date, status, start_time, end_time`

const upsertQuery = `
		INSERT INTO trainer_availability (trainer_id, date, status, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trainer_id, date) DO UPDATE
		SET status = EXCLUDED.status, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
		RETURNING` + availabilityColumns

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error) {
	query := `
		SELECT` + availabilityColumns + `
		FROM trainer_availability
		WHERE trainer_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, id ASC
	`

	records := []calendar.Availability{}
	err := r.db.SelectContext(ctx, &records, query, trainerID, window.FromString(), window.ToString())
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repository) Upsert(ctx context.Context, a calendar.Availability) (*calendar.Availability, error) {
	var saved calendar.Availability
	err := r.db.GetContext(ctx, &saved, upsertQuery, a.TrainerID, a.Date, a.Status, a.StartTime, a.EndTime)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// BulkUpsert writes all records in one transaction.
func (r *repository) BulkUpsert(ctx context.Context, records []calendar.Availability) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, a := range records {
			var saved calendar.Availability
			if err := tx.GetContext(ctx, &saved, upsertQuery, a.TrainerID, a.Date, a.Status, a.StartTime, a.EndTime); err != nil {
				return fmt.Errorf("upsert %s: %w", a.Date, err)
			}
		}
		return nil
	})
}

func (r *repository) GetBlockedWeekdays(ctx context.Context, trainerID int) ([]int, error) {
	query := `
		SELECT weekday
		FROM trainer_blocked_weekdays
		WHERE trainer_id = $1
		ORDER BY weekday ASC
	`

	weekdays := []int{}
	if err := r.db.SelectContext(ctx, &weekdays, query, trainerID); err != nil {
		return nil, err
	}
	return weekdays, nil
}

func (r *repository) ReplaceBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM trainer_blocked_weekdays WHERE trainer_id = $1`, trainerID); err != nil {
			return err
		}

		for _, wd := range weekdays {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO trainer_blocked_weekdays (trainer_id, weekday) VALUES ($1, $2)`,
				trainerID, wd,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
