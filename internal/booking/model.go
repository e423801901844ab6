package booking

import "time"

const (
	KindRequest = "request"
	KindEvent   = "event"

	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDenied    = "denied"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Request is a booking request made to a trainer.
type Request struct {
	ID            int        `db:"id" json:"id"`
	TrainerID     int        `db:"trainer_id" json:"trainer_id"`
	ClientName    string     `db:"client_name" json:"client_name"`
	CourseTitle   string     `db:"course_title" json:"course_title"`
	Status        string     `db:"status" json:"status"`
	RequestedDate *string    `db:"requested_date" json:"requested_date"`
	EndDate       *string    `db:"end_date" json:"end_date,omitempty"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
	ProcessedAt   *time.Time `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Event is an engagement scheduled for a trainer by an administrator.
type Event struct {
	ID        int        `db:"id" json:"id"`
	TrainerID int        `db:"trainer_id" json:"trainer_id"`
	Title     string     `db:"title" json:"title"`
	Status    *string    `db:"status" json:"status,omitempty"`
	EventDate *string    `db:"event_date" json:"event_date,omitempty"`
	StartDate *string    `db:"start_date" json:"start_date,omitempty"`
	EndDate   *string    `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved denied confirmed cancelled"`
}
