package events

import "sync"

type handler struct {
	id int
	fn func(Event)
}

// Bus is an in-process, typed publish/subscribe hub. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]handler
	nextID   int
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]handler)}
}

// Subscribe registers fn for every event of type E and returns a function
// that removes the subscription.
func Subscribe[E Event](b *Bus, fn func(E)) func() {
	var zero E
	topic := zero.Topic()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], handler{
		id: id,
		fn: func(e Event) {
			if typed, ok := e.(E); ok {
				fn(typed)
			}
		},
	})
	b.mu.Unlock()

	return func() { b.unsubscribe(topic, id) }
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]handler, len(b.handlers[e.Topic()]))
	copy(hs, b.handlers[e.Topic()])
	b.mu.RUnlock()

	for _, h := range hs {
		h.fn(e)
	}
}

func (b *Bus) unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hs := b.handlers[topic]
	for i, h := range hs {
		if h.id == id {
			b.handlers[topic] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}
