// Package events provides the live fan-out channel between the
// verification engine and connected monitoring dashboards.
package events

import (
	"sync"
	"time"
)

// Event types pushed to monitoring subscribers.
const (
	TypeVerificationUpdate = "verification_update"
	TypeSessionStarted     = "session_started"
	TypeSessionEnded       = "session_ended"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events.
const subscriberBuffer = 16

// Event is one message on the live channel.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// VerificationUpdate is the payload broadcast after each completed
// verification attempt. Field names match the audit log wire format.
type VerificationUpdate struct {
	PlayerID      string    `json:"player_id"`
	PlayerName    string    `json:"player_name"`
	Status        string    `json:"status"`
	Confidence    float64   `json:"confidence"`
	DeviceMatched bool      `json:"device_matched"`
	Timestamp     time.Time `json:"timestamp"`
	LogID         int64     `json:"log_id"`
}

// SessionSignal is the payload broadcast on session start/end signals.
type SessionSignal struct {
	PlayerID  string    `json:"player_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans events out to currently connected subscribers. It owns no
// persisted state and keeps no replay buffer: subscribers connecting
// after an emission never see it. Zero subscribers is not an error.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel
// along with an unsubscribe function. The unsubscribe function closes
// the channel and is safe to call once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Broadcast delivers an event to all current subscribers. It never
// blocks: a subscriber with a full buffer misses the event.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full, skip.
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
