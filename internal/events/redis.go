package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"trainercal/internal/logger"
	"trainercal/internal/metrics"
)

// Publisher announces calendar changes to whoever renders calendars.
type Publisher interface {
	PublishCalendarChanged(ctx context.Context, e CalendarChanged)
}

// PublishCalendarChanged delivers the event to local subscribers only.
func (b *Bus) PublishCalendarChanged(_ context.Context, e CalendarChanged) {
	b.Publish(e)
}

type envelope struct {
	Origin  string          `json:"origin"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBridge publishes events locally and on a Redis channel, and relays
// events published by other instances onto the local bus.
type RedisBridge struct {
	redis   *redis.Client
	channel string
	bus     *Bus
	origin  string
}

func NewRedisBridge(client *redis.Client, channel string, bus *Bus) *RedisBridge {
	return &RedisBridge{
		redis:   client,
		channel: channel,
		bus:     bus,
		origin:  uuid.NewString(),
	}
}

func (r *RedisBridge) PublishCalendarChanged(ctx context.Context, e CalendarChanged) {
	r.bus.Publish(e)

	if err := r.publish(ctx, e); err != nil {
		logger.Error("Failed to relay calendar change", "trainer_id", e.TrainerID, "error", err)
	}
}

func (r *RedisBridge) publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	data, err := json.Marshal(envelope{Origin: r.origin, Topic: e.Topic(), Payload: payload})
	if err != nil {
		return err
	}

	return r.redis.Publish(ctx, r.channel, data).Err()
}

// Run relays remote events until ctx is cancelled.
func (r *RedisBridge) Run(ctx context.Context) {
	pubsub := r.redis.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	logger.Info("Event relay started", "channel", r.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Event relay stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := r.relay([]byte(msg.Payload)); err != nil {
				logger.Errorf("Bad event data: %v", err)
			}
		}
	}
}

func (r *RedisBridge) relay(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Origin == r.origin {
		return nil
	}

	e, err := decode(env.Topic, env.Payload)
	if err != nil {
		return err
	}

	r.bus.Publish(e)
	metrics.RecordEventRelayed(env.Topic)
	return nil
}

func decode(topic string, payload json.RawMessage) (Event, error) {
	switch topic {
	case TopicCalendarChanged:
		var e CalendarChanged
		err := json.Unmarshal(payload, &e)
		return e, err
	case TopicNotificationRead:
		var e NotificationRead
		err := json.Unmarshal(payload, &e)
		return e, err
	case TopicLoggedOut:
		var e LoggedOut
		err := json.Unmarshal(payload, &e)
		return e, err
	default:
		return nil, fmt.Errorf("unknown topic %q", topic)
	}
}

func (r *RedisBridge) Close() error {
	return r.redis.Close()
}
