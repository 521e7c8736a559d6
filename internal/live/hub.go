// Package live fans out write notifications to in-process subscribers such
// as websocket connections.
package live

import (
	"sync"

	"github.com/google/uuid"

	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

const defaultBufferSize = 16

// Event is one notification. Data is delivered as published.
type Event struct {
	Topic  string `json:"topic"`
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// Publisher is the write side of the hub used by services.
type Publisher interface {
	Publish(Event)
}

// Subscription receives events for a single topic until Unsubscribe.
type Subscription struct {
	ID    string
	Topic string
	C     <-chan Event

	ch chan Event
}

// Hub is a topic keyed broadcast fan-out. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
	bufferSize  int
	logger      interfaces.Logger
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithBufferSize sets each subscriber's channel capacity.
func WithBufferSize(size int) HubOption {
	return func(h *Hub) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(logger interfaces.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub returns an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subscribers: map[string]*Subscription{},
		bufferSize:  defaultBufferSize,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ Publisher = (*Hub)(nil)

// Subscribe registers a new subscriber on topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan Event, h.bufferSize)
	sub := &Subscription{
		ID:    uuid.NewString(),
		Topic: topic,
		C:     ch,
		ch:    ch,
	}

	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	h.mu.Unlock()

	h.logger.Debug("live.subscribe", "topic", topic, "subscriber_id", sub.ID)
	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
		close(sub.ch)
	}
	h.mu.Unlock()

	if ok {
		h.logger.Debug("live.unsubscribe", "topic", sub.Topic, "subscriber_id", id)
	}
}

// Publish delivers event to every subscriber of its topic. A subscriber
// whose buffer is full misses the event.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		if sub.Topic != event.Topic {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn("live.event.dropped", "topic", event.Topic, "subscriber_id", sub.ID)
		}
	}
}

// Subscribers reports the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, sub := range h.subscribers {
		if sub.Topic == topic {
			count++
		}
	}
	return count
}
