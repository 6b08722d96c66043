package hub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event represents a change to the games table sent to listening clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is the channel an SSE handler reads encoded events from.
type Client chan []byte

// Hub fans game events out to every subscribed client.
type Hub struct {
	clients map[Client]struct{}
	mu      sync.RWMutex
	log     *zap.Logger
}

// NewHub creates a new Hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[Client]struct{}),
		log:     log,
	}
}

// Subscribe registers a client with room for buffer pending events.
func (h *Hub) Subscribe(buffer int) Client {
	client := make(Client, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// Len returns the number of subscribed clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to all clients.
func (h *Hub) Broadcast(event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		h.log.Error("Failed to encode event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		// A full buffer means the client is slow; drop the event for it.
		select {
		case client <- messageBytes:
		default:
			h.log.Warn("Dropping event for slow client", zap.String("type", event.Type))
		}
	}
}
