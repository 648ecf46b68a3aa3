package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer is how many messages may wait for a slow browser before it is dropped.
const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the open event streams. A user may have several tabs open.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
	}
}

// Register adds conn and returns its client; the caller drains client.send.
func (h *Hub) Register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = c
	return c
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	c, exists := h.clients[conn]
	if !exists {
		return
	}
	delete(h.clients, conn)
	close(c.send)
	_ = conn.Close()
}

// Broadcast queues message for every connection and returns how many accepted it.
// It never waits on the network; a client whose queue is full is disconnected.
func (h *Hub) Broadcast(message any) int {
	data, err := json.Marshal(message)
	if err != nil {
		return 0
	}

	h.mutex.RLock()
	sent := 0
	var slow []*websocket.Conn
	for conn, c := range h.clients {
		select {
		case c.send <- data:
			sent++
		default:
			slow = append(slow, conn)
		}
	}
	h.mutex.RUnlock()

	if len(slow) > 0 {
		h.mutex.Lock()
		for _, conn := range slow {
			h.removeLocked(conn)
		}
		h.mutex.Unlock()
	}
	return sent
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.clients {
		h.removeLocked(conn)
	}
}
