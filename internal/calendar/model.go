package calendar

import "time"

type Status string

const (
	StatusAvailable    Status = "available"
	StatusNotAvailable Status = "not_available"
	StatusBlocked      Status = "blocked"
	StatusTentative    Status = "tentative"
	StatusBooked       Status = "booked"
)

// Statuses lists every day status in display order.
var Statuses = []Status{
	StatusAvailable,
	StatusNotAvailable,
	StatusBlocked,
	StatusTentative,
	StatusBooked,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Booking is the canonical shape both upstream kinds (trainer booking
// requests and admin-created events) are normalized into.
type Booking struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	Title         string     `json:"title,omitempty"`
	Status        string     `json:"status"`
	RequestedDate *string    `json:"requested_date"`
	EndDate       *string    `json:"end_date,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SortKey is the processing time, or the creation time when the booking
// has not been processed yet.
func (b Booking) SortKey() time.Time {
	if b.ProcessedAt != nil {
		return *b.ProcessedAt
	}
	return b.CreatedAt
}

type Availability struct {
	ID        int     `db:"id" json:"id"`
	TrainerID int     `db:"trainer_id" json:"trainer_id"`
	Date      string  `db:"date" json:"date"`
	Status    string  `db:"status" json:"status"`
	StartTime *string `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string `db:"end_time" json:"end_time,omitempty"`
}

// CalendarDay is a computed projection of one date. It is never stored;
// Status is always re-derivable from Bookings, Availability and IsBlocked.
type CalendarDay struct {
	Date           time.Time     `json:"date"`
	DateString     string        `json:"date_string"`
	IsCurrentMonth bool          `json:"is_current_month"`
	IsToday        bool          `json:"is_today"`
	Status         Status        `json:"status"`
	Bookings       []Booking     `json:"bookings"`
	Availability   *Availability `json:"availability"`
	IsBlocked      bool          `json:"is_blocked"`
}
