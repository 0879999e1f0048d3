package introspect

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// streamHub pushes periodic GraphSnapshot events to every connected
// /debug/stream client. Modeled on a broadcast-to-all-clients hub: each
// client gets its own goroutine reading (to notice disconnects) while a
// single ticker goroutine drives the broadcasts.
type streamHub struct {
	registry *Registry
	interval time.Duration

	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func newStreamHub(registry *Registry, interval time.Duration) *streamHub {
	return &streamHub{
		registry: registry,
		interval: interval,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *streamHub) handle(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Send an immediate snapshot so the client has something before the
	// first tick.
	h.sendTo(conn, h.registry.Snapshot())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// run drives the periodic broadcast loop until ctx-equivalent stop is
// closed. Intended to be started once, from Server.Run, in its own
// goroutine.
func (h *streamHub) run(stop <-chan struct{}) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.broadcast(h.registry.Snapshot())
		}
	}
}

func (h *streamHub) broadcast(snap GraphSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.Close()
		}
	}
}

func (h *streamHub) sendTo(conn *websocket.Conn, snap GraphSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}
}

// ClientCount reports how many /debug/stream clients are currently
// connected.
func (h *streamHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
