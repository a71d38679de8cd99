package sse

import (
	"sync"

	"github.com/kbukum/streamkit/logger"
)

// Client represents one connected SSE client.
type Client struct {
	id     string
	events chan []byte
}

// NewClient creates a client with the given ID.
func NewClient(id string) *Client {
	return &Client{
		id:     id,
		events: make(chan []byte, 16),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() string { return c.id }

// Events returns the channel of encoded snapshots for this client.
func (c *Client) Events() <-chan []byte { return c.events }

// send delivers data to the client's event channel.
// Returns false if the channel is full (client is slow).
func (c *Client) send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		return false
	}
}

// Hub fans pagination snapshots out to connected SSE clients. The latest
// snapshot is retained and replayed to every newly connected client.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	latest  []byte
	closed  bool
	log     *logger.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		log:     logger.WithComponent("sse"),
	}
}

// Register adds a client and replays the latest snapshot to it, if any.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.events)
		return
	}
	h.clients[c.id] = c
	if h.latest != nil {
		c.send(h.latest)
	}
	h.log.Debug("client registered", logger.Fields(
		"client_id", c.id,
		"total_clients", len(h.clients),
	))
}

// Unregister removes a client and closes its event channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.events)
}

// Publish stores data as the latest snapshot and broadcasts it to all
// connected clients. Slow clients are skipped, not blocked on.
func (h *Hub) Publish(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = data
	for _, c := range h.clients {
		if !c.send(data) {
			h.log.Warn("client channel full, dropping snapshot", logger.Fields(
				"client_id", c.id,
			))
		}
	}
}

// Close disconnects all clients. Further Publish and Register calls are
// no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, c := range h.clients {
		close(c.events)
	}
	h.clients = nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
