package services

import (
	"sync"
	"time"
)

// AuditEventMessage is the payload broadcast to subscribed admin dashboards
// whenever a mutating action is recorded.
type AuditEventMessage struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	ActorName string    `json:"actor_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// EventHub manages SSE client connections and audit event broadcasting.
// Delivery is best-effort: a slow subscriber loses events rather than
// blocking the publisher.
type EventHub struct {
	clients map[string]chan AuditEventMessage
	mu      sync.RWMutex
}

// NewEventHub creates a new hub instance.
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]chan AuditEventMessage),
	}
}

// Subscribe registers a new client and returns a channel for receiving events
func (h *EventHub) Subscribe(clientID string) <-chan AuditEventMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered channel so publishing never blocks
	ch := make(chan AuditEventMessage, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub
func (h *EventHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients
func (h *EventHub) Publish(event AuditEventMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- event:
		default:
			// Client buffer full, drop this event
		}
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var (
	globalEventHub *EventHub
	eventHubOnce   sync.Once
)

// GetEventHub returns the global audit event hub singleton.
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}
