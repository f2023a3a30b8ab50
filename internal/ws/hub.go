package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"
)

// Client is one websocket connection of an authenticated employee.
type Client struct {
	Conn   *websocket.Conn
	UserID string
}

type Hub struct {
	Clients    map[*websocket.Conn]*Client
	Register   chan *Client
	Unregister chan *websocket.Conn
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client.Conn] = client
			h.mutex.Unlock()
			log.Info().Str("user_id", client.UserID).Msg("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast sends message to every connected client.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		h.write(conn, message)
	}
}

// SendToUsers delivers message only to connections owned by the given employees.
func (h *Hub) SendToUsers(userIDs []string, message []byte) {
	if h == nil || len(userIDs) == 0 {
		return
	}
	targets := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		targets[id] = struct{}{}
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, client := range h.Clients {
		if _, ok := targets[client.UserID]; ok {
			h.write(conn, message)
		}
	}
}

// BroadcastJSON marshals payload and broadcasts it.
func (h *Hub) BroadcastJSON(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("ws marshal failed")
		return
	}
	h.Broadcast(msg)
}

// SendJSON marshals payload and sends it to the given employees.
func (h *Hub) SendJSON(userIDs []string, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("ws marshal failed")
		return
	}
	h.SendToUsers(userIDs, msg)
}

// ConnectedUsers returns the number of open connections.
func (h *Hub) ConnectedUsers() int {
	if h == nil {
		return 0
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// write must be called with the mutex held.
func (h *Hub) write(conn *websocket.Conn, message []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		conn.Close()
		delete(h.Clients, conn)
	}
}
