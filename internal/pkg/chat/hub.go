// Package chat is a thin real-time relay: clients join named rooms over a
// websocket and messages are fanned out to everyone in the room, across
// instances via Redis pub/sub. Delivery is best effort; history is persisted
// opportunistically for the room history endpoint.
package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/cache"
)

const channelPrefix = "chat."

// Envelope is the wire format in both directions. Clients send type "join"
// or "message"; the relay stamps sender identity from the session principal,
// never from the payload.
type Envelope struct {
	Type       string      `json:"type"`
	Room       string      `json:"room"`
	Body       string      `json:"body,omitempty"`
	SenderID   uint        `json:"senderId,omitempty"`
	SenderRole models.Role `json:"senderRole,omitempty"`
	SenderName string      `json:"senderName,omitempty"`
	SentAt     time.Time   `json:"sentAt,omitempty"`
}

type relayedEnvelope struct {
	Envelope
	Origin string `json:"origin"`
}

// Sender identifies the authenticated peer on a connection.
type Sender struct {
	ID   uint
	Role models.Role
	Name string
}

// Hub tracks room membership for this instance and bridges rooms across
// instances through Redis.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]map[*websocket.Conn]bool
	repo       repository.ChatRepository
	log        *logrus.Logger
	instanceID string
}

// NewHub creates a relay hub.
func NewHub(repo repository.ChatRepository, log *logrus.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*websocket.Conn]bool),
		repo:       repo,
		log:        log,
		instanceID: uuid.NewString(),
	}
}

// Run consumes the Redis side of the relay and fans remote messages into
// local rooms. It blocks; run it in its own goroutine.
func (h *Hub) Run() {
	sub := cache.Subscribe(channelPrefix + "*")
	for msg := range sub.Channel() {
		var relayed relayedEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
			h.log.WithError(err).Warn("chat: dropping malformed relay payload")
			continue
		}
		if relayed.Origin == h.instanceID {
			continue // we already delivered our own broadcast locally
		}
		h.deliver(relayed.Envelope)
	}
}

// Join adds a connection to a room.
func (h *Hub) Join(room string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*websocket.Conn]bool)
	}
	h.rooms[room][conn] = true
}

// Drop removes a connection from every room it joined.
func (h *Hub) Drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, conns := range h.rooms {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast persists the message best-effort, delivers it to local room
// members and publishes it for the other instances.
func (h *Hub) Broadcast(env Envelope) {
	if h.repo != nil {
		record := models.ChatMessage{
			Room:       env.Room,
			SenderID:   env.SenderID,
			SenderRole: env.SenderRole,
			SenderName: env.SenderName,
			Body:       env.Body,
		}
		if err := h.repo.Create(&record); err != nil {
			h.log.WithError(err).Warn("chat: failed to persist message history")
		}
	}

	h.deliver(env)

	payload, err := json.Marshal(relayedEnvelope{Envelope: env, Origin: h.instanceID})
	if err != nil {
		return
	}
	if err := cache.Publish(channelPrefix+env.Room, payload); err != nil {
		h.log.WithError(err).Warn("chat: relay publish failed")
	}
}

func (h *Hub) deliver(env Envelope) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[env.Room]))
	for conn := range h.rooms[env.Room] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(env); err != nil {
			// the read loop notices the dead peer and drops it
			h.log.WithError(err).Debug("chat: write to peer failed")
		}
	}
}

// ServeConn runs the read loop for an authenticated connection until the
// peer disconnects.
func (h *Hub) ServeConn(conn *websocket.Conn, sender Sender) {
	defer func() {
		h.Drop(conn)
		conn.Close()
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		if env.Room == "" {
			continue
		}
		switch env.Type {
		case "join":
			h.Join(env.Room, conn)
		case "message":
			if env.Body == "" {
				continue
			}
			env.SenderID = sender.ID
			env.SenderRole = sender.Role
			env.SenderName = sender.Name
			env.SentAt = time.Now().UTC()
			h.Broadcast(env)
		}
	}
}
