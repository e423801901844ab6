package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribe_TypedDelivery(t *testing.T) {
	bus := NewBus()

	var changed []CalendarChanged
	var logouts []LoggedOut
	Subscribe(bus, func(e CalendarChanged) { changed = append(changed, e) })
	Subscribe(bus, func(e LoggedOut) { logouts = append(logouts, e) })

	bus.Publish(CalendarChanged{TrainerID: 3, Reason: "availability"})
	bus.Publish(LoggedOut{Reason: "unauthorized"})
	bus.Publish(NotificationRead{NotificationID: 1})

	assert.Equal(t, []CalendarChanged{{TrainerID: 3, Reason: "availability"}}, changed)
	assert.Equal(t, []LoggedOut{{Reason: "unauthorized"}}, logouts)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := Subscribe(bus, func(NotificationRead) { calls++ })
	other := 0
	Subscribe(bus, func(NotificationRead) { other++ })

	bus.Publish(NotificationRead{NotificationID: 1})
	unsubscribe()
	bus.Publish(NotificationRead{NotificationID: 2})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestBus_PublishCalendarChanged(t *testing.T) {
	bus := NewBus()

	var got CalendarChanged
	Subscribe(bus, func(e CalendarChanged) { got = e })

	var p Publisher = bus
	p.PublishCalendarChanged(context.Background(), CalendarChanged{TrainerID: 9})

	assert.Equal(t, 9, got.TrainerID)
}
