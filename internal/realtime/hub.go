// Package realtime pushes activity-log and notification events to
// role-partitioned broadcast groups over websockets. Delivery is
// best-effort: no acknowledgement, no retry, and never an error into the
// HTTP path that triggered the event.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// Role rooms and event names carried on the realtime channel.
const (
	RoomAdmin    = "admin"
	RoomEmployee = "employee"
	RoomCustomer = "customer"

	EventNewCar            = "new-car"
	EventActivityLogUpdate = "activity-log-update"
	EventNotification      = "notification"
)

// Broadcaster is the fan-out contract consumed by the HTTP handlers.
type Broadcaster interface {
	Broadcast(rooms []string, event string, payload interface{})
}

// TokenValidator authenticates websocket attach requests.
type TokenValidator interface {
	ValidateToken(token string) (*models.Claims, error)
}

// envelope is the wire format for pushed events.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub owns the live room memberships. Handlers only consume it through
// Broadcast; membership changes happen on connection attach/detach.
type Hub struct {
	validator TokenValidator
	upgrader  websocket.Upgrader

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

// NewHub creates a hub that admits clients authenticated by validator.
func NewHub(validator TokenValidator) *Hub {
	return &Hub{
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rooms: make(map[string]map[*client]struct{}),
	}
}

// Broadcast sends an event to every client in the given rooms. Slow or
// gone clients are skipped for this message; failures are logged and
// swallowed.
func (h *Hub) Broadcast(rooms []string, event string, payload interface{}) {
	message, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		log.WithError(err).WithField("event", event).Error("failed to encode realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, room := range rooms {
		for c := range h.rooms[room] {
			select {
			case c.send <- message:
			default:
				// client can't keep up; drop this message for it
			}
		}
	}
}

// ServeHTTP upgrades the connection and joins the client to its role
// room. Browsers can't set headers on websocket requests, so the token
// rides in the query string.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.validator.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 32)}
	room := string(claims.Role)
	h.join(room, c)

	go h.writePump(c, room)
	go h.readPump(c, room)
}

func (h *Hub) join(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

func (h *Hub) leave(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[room]; ok {
		if _, member := clients[c]; member {
			delete(clients, c)
			close(c.send)
			if len(clients) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

func (h *Hub) writePump(c *client, room string) {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.leave(room, c)
			return
		}
	}
}

func (h *Hub) readPump(c *client, room string) {
	defer func() {
		h.leave(room, c)
		c.conn.Close()
	}()
	for {
		// inbound messages are ignored; reading only detects closes
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
