// Package push receives the backend's notification stream and fans it
// out to interested parts of the console (page handlers, the browser
// relay). Notifications are advisory; pages that miss one simply show
// slightly stale data until the next reload.
package push

import (
	"encoding/json"
	"sync"
)

// Notification topics the backend emits.
const (
	TopicNewAttendance = "nueva_asistencia"
	TopicNewPayment    = "nuevo_cobro"
	TopicNewStudent    = "nuevo_estudiante"
	TopicClassChange   = "cambio_clase"

	// TopicAll subscribes to every notification regardless of topic.
	TopicAll = "*"
)

// Notification is the backend's push envelope.
type Notification struct {
	Topic     string          `json:"tipo"`
	Data      json.RawMessage `json:"datos"`
	Timestamp string          `json:"timestamp"`
}

// Hub fans notifications out to subscribers by topic.
// INVARIANT: a subscriber registered under "*" sees every notification
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[int]chan Notification
	nextID      int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[int]chan Notification)}
}

// Subscribe registers interest in a topic and returns the delivery
// channel plus an unsubscribe func. Delivery is best-effort: a
// subscriber that stops draining its channel loses notifications
// rather than blocking the hub.
func (h *Hub) Subscribe(topic string) (<-chan Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan Notification, 16)
	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[int]chan Notification)
	}
	h.subscribers[topic][id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subscribers[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subscribers, topic)
			}
		}
	}
	return ch, unsubscribe
}

// SubscribeAll registers interest in every topic.
func (h *Hub) SubscribeAll() (<-chan Notification, func()) {
	return h.Subscribe(TopicAll)
}

// Publish delivers a notification to wildcard subscribers first, then
// topic subscribers, mirroring the backend's own dispatch order.
func (h *Hub) Publish(n Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers[TopicAll] {
		deliver(ch, n)
	}
	for _, ch := range h.subscribers[n.Topic] {
		deliver(ch, n)
	}
}

// SubscriberCount reports how many subscribers a topic has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

func deliver(ch chan Notification, n Notification) {
	select {
	case ch <- n:
	default:
	}
}
