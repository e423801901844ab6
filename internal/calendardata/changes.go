package calendardata

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"trainercal/internal/api"
	"trainercal/internal/events"
	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

const (
	// EventReady is the first event of every change stream. Changes
	// published after it are delivered.
	EventReady = "ready"
	eventPing  = "ping"

	changeBuffer = 16
)

// ChangeStream pushes a trainer's CalendarChanged events to HTTP clients
// as server-sent events. Clients refetch on every event.
type ChangeStream struct {
	bus       *events.Bus
	heartbeat time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func NewChangeStream(bus *events.Bus) *ChangeStream {
	return &ChangeStream{
		bus:       bus,
		heartbeat: 30 * time.Second,
		done:      make(chan struct{}),
	}
}

// Close ends every open stream.
func (s *ChangeStream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// @Summary      Stream a trainer's calendar changes
// @Description  Server-sent events: "ready" once, then "calendar.changed" per change
// @Tags         calendar
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {object} events.CalendarChanged
// @Failure      400 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/calendar/changes [get]
func (s *ChangeStream) Stream(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	// Handlers run on the publisher's goroutine; a full buffer drops the
	// change since the next one triggers the same refetch.
	changes := make(chan events.CalendarChanged, changeBuffer)
	unsubscribe := events.Subscribe(s.bus, func(e events.CalendarChanged) {
		if e.TrainerID != trainerID {
			return
		}
		select {
		case changes <- e:
		default:
			logger.Warn("Change stream full, dropping event", "trainer_id", trainerID, "reason", e.Reason)
		}
	})
	defer unsubscribe()

	metrics.ChangeStreamOpened()
	defer metrics.ChangeStreamClosed()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(EventReady, gin.H{"trainer_id": trainerID})
	c.Writer.Flush()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-s.done:
			return false
		case e := <-changes:
			c.SSEvent(events.TopicCalendarChanged, e)
			return true
		case <-heartbeat.C:
			c.SSEvent(eventPing, "")
			return true
		}
	})
}
