// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package live pushes reload notifications to open browser tabs over
// WebSocket. Whenever the staging or live document changes, every
// connected viewer is told to refresh so it renders the new content.
package live

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// connWithMutex wraps a connection with its own write mutex. gorilla
// connections allow only one concurrent writer.
type connWithMutex struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub tracks open viewer connections and broadcasts reload messages.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*connWithMutex
	upgrader    websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*connWithMutex),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
			// Viewers connect from the page the server itself rendered.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and parks the connection until the
// client goes away. Incoming messages are drained and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.add(conn)
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Reload tells every connected viewer to refresh.
func (h *Hub) Reload() {
	h.broadcast("reload")
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = &connWithMutex{conn: conn}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn)
}

// broadcast writes a text message to every connection. Dead connections
// are dropped from the set as they fail.
func (h *Hub) broadcast(message string) {
	h.mu.RLock()
	conns := make([]*connWithMutex, 0, len(h.connections))
	for _, cwm := range h.connections {
		conns = append(conns, cwm)
	}
	h.mu.RUnlock()

	for _, cwm := range conns {
		cwm.mu.Lock()
		err := cwm.conn.WriteMessage(websocket.TextMessage, []byte(message))
		cwm.mu.Unlock()

		if err != nil {
			h.remove(cwm.conn)
			cwm.conn.Close()
		}
	}
}
