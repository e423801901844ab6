package booking

import (
	"fmt"
	"strings"

	"trainercal/internal/calendar"
)

// FromRequest maps a booking request onto the canonical booking shape.
func FromRequest(r Request) calendar.Booking {
	title := r.CourseTitle
	if title == "" {
		title = r.ClientName
	}

	return calendar.Booking{
		ID:            fmt.Sprintf("%s-%d", KindRequest, r.ID),
		Kind:          KindRequest,
		Title:         title,
		Status:        r.Status,
		RequestedDate: nonEmpty(r.RequestedDate),
		EndDate:       nonEmpty(r.EndDate),
		ProcessedAt:   r.ProcessedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// FromEvent maps an admin-created event onto the canonical booking shape.
// Events without a status are confirmed engagements. The event date falls
// back to the start date.
func FromEvent(e Event) calendar.Booking {
	status := StatusConfirmed
	if e.Status != nil && strings.TrimSpace(*e.Status) != "" {
		status = *e.Status
	}

	date := nonEmpty(e.EventDate)
	if date == nil {
		date = nonEmpty(e.StartDate)
	}

	return calendar.Booking{
		ID:            fmt.Sprintf("%s-%d", KindEvent, e.ID),
		Kind:          KindEvent,
		Title:         e.Title,
		Status:        status,
		RequestedDate: date,
		EndDate:       nonEmpty(e.EndDate),
		ProcessedAt:   e.UpdatedAt,
		CreatedAt:     e.CreatedAt,
	}
}

func FromRequests(requests []Request) []calendar.Booking {
	out := make([]calendar.Booking, 0, len(requests))
	for _, r := range requests {
		out = append(out, FromRequest(r))
	}
	return out
}

func FromEvents(events []Event) []calendar.Booking {
	out := make([]calendar.Booking, 0, len(events))
	for _, e := range events {
		out = append(out, FromEvent(e))
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
