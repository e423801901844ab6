package events

// Event is implemented by every message carried on the Bus.
type Event interface {
	Topic() string
}

const (
	TopicLoggedOut        = "auth.logged_out"
	TopicNotificationRead = "notification.read"
	TopicCalendarChanged  = "calendar.changed"
)

// LoggedOut is published when a session loses its credentials, either
// explicitly or because the backend rejected them.
type LoggedOut struct {
	Reason string `json:"reason"`
}

func (LoggedOut) Topic() string { return TopicLoggedOut }

type NotificationRead struct {
	NotificationID int `json:"notification_id"`
	UserID         int `json:"user_id"`
}

func (NotificationRead) Topic() string { return TopicNotificationRead }

// CalendarChanged tells calendar consumers of a trainer to refetch.
type CalendarChanged struct {
	TrainerID int    `json:"trainer_id"`
	Reason    string `json:"reason"`
}

func (CalendarChanged) Topic() string { return TopicCalendarChanged }
