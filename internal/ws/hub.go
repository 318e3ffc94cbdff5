package ws

import (
	"encoding/json"
	"sync"

	"todo_api/internal/domain"
	"todo_api/internal/logger"
)

// Hub fans task events out to every connected subscriber.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	logger.Debug("event subscriber connected", "remote", c.remote, "subscribers", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	logger.Debug("event subscriber disconnected", "remote", c.remote, "subscribers", n)
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements service.EventPublisher. It never blocks: a subscriber whose
// send buffer is full is disconnected.
func (h *Hub) Publish(event domain.TaskEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to encode task event", "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logger.Warn("dropping slow event subscriber", "remote", c.remote)
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
