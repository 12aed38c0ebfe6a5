package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the envelope written to every connected client.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub manages active WebSocket connections and fans store change events out
// to all of them. There is no per-user routing: the API is unauthenticated,
// so every client sees the full feed.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a connection to the feed.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a connection from the feed.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// ClientCount reports the number of active connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the event to all active connections. Connections that fail
// to write are closed; removal happens when their read loop exits.
func (h *Hub) Broadcast(event string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	payload := Event{Event: event, Data: data}
	for conn := range h.conns {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
		}
	}
}
