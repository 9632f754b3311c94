package handlers

import (
	"sync"

	"github.com/mapleleafu/spritedex/metrics"
)

// Hub maintains the set of active socket connections.
type Hub struct {
	mu sync.Mutex

	// Registered connections.
	connections map[*Connection]bool

	metrics *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		metrics:     m,
	}
}

func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		return
	}
	h.connections[c] = true
	h.metrics.SocketOpened()
}

// Unregister removes c from the hub. Removing an unknown connection is a no-op.
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; !ok {
		return
	}
	delete(h.connections, c)
	h.metrics.SocketClosed()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// CloseAll closes every registered connection. Each connection unregisters
// itself once its read loop exits.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.connections))
	for c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
