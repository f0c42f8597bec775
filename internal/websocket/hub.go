// Package websocket pushes task and comment events to connected users.
package websocket

import (
	"context"
	"encoding/json"

	"team-collab/internal/models"
	"team-collab/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// clientBuffer is how many events may wait for one slow connection before
// the hub drops it.
const clientBuffer = 16

// Client is one open connection of an authenticated user. A user may hold
// several. Writes happen on the client's own goroutine so a stalled
// connection never holds up the hub.
type Client struct {
	UserID int64
	Conn   Conn

	send chan []byte
}

func (c *Client) writePump() {
	for payload := range c.send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.SystemLogger.Warn("Error writing to websocket", zap.Int64("user_id", c.UserID), zap.Error(err))
			c.Conn.Close()
			return
		}
	}
}

type delivery struct {
	userIDs []int64
	payload []byte
}

// Hub owns the client set. All access to it happens inside Run.
type Hub struct {
	clients    map[int64]map[*Client]bool
	broadcast  chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub whose outgoing queue holds up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan delivery, buffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Conn.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Notify queues event for userIDs. It never blocks: when the queue is full
// the event is dropped.
func (h *Hub) Notify(userIDs []int64, event models.Event) {
	if len(userIDs) == 0 {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- delivery{userIDs: userIDs, payload: payload}:
	default:
		logger.SystemLogger.Warn("Notification queue full, dropping event",
			zap.String("type", event.Type), zap.Int64("task_id", event.TaskID))
	}
}

// Run serves register, unregister and delivery until ctx is done, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
					client.Conn.Close()
				}
			}
			h.clients = map[int64]map[*Client]bool{}
			return
		case client := <-h.register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			if h.clients[client.UserID][client] {
				continue
			}
			h.clients[client.UserID][client] = true
		case client := <-h.unregister:
			h.remove(client)
		case d := <-h.broadcast:
			for _, userID := range d.userIDs {
				for client := range h.clients[userID] {
					select {
					case client.send <- d.payload:
					default:
						logger.SystemLogger.Warn("Websocket client too slow, disconnecting", zap.Int64("user_id", userID))
						h.remove(client)
					}
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.UserID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	close(client.send)
	client.Conn.Close()
}
