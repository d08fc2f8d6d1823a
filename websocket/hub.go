// websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Change event types.
const (
	EventCreated     = "created"
	EventUpdated     = "updated"
	EventDeleted     = "deleted"
	EventArchived    = "archived"
	EventReactivated = "reactivated"
)

// ChangeEvent is pushed to change-feed clients after a write.
type ChangeEvent struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	ID         string      `json:"id,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	UserID     string      `json:"userId,omitempty"`
}

type broadcast struct {
	collection string
	message    []byte
}

// Hub fans change events out to connected clients. Clients only touch the
// hub through channels; Run owns the client set.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan broadcast
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	count      chan chan int
	logger     *zap.Logger

	mu         sync.RWMutex
	restricted map[string]map[string]bool
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan broadcast, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		count:      make(chan chan int),
		logger:     logger,
		restricted: make(map[string]map[string]bool),
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.Info("websocket hub started")
	defer h.stop()
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.logger.Info("websocket hub stopped")
			return nil

		case c := <-h.register:
			h.clients[c] = struct{}{}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case b := <-h.broadcast:
			for c := range h.clients {
				if !c.wants(b.collection) || !h.Permits(c.role, b.collection) {
					continue
				}
				select {
				case c.send <- b.message:
				default:
					h.logger.Warn("dropping slow websocket client", zap.String("remote", c.remote))
					delete(h.clients, c)
					close(c.send)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Restrict limits collection's events to clients holding one of roles.
func (h *Hub) Restrict(collection string, roles ...string) {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	h.mu.Lock()
	h.restricted[collection] = allowed
	h.mu.Unlock()
}

// Permits reports whether a client with role may see collection's events.
// Anonymous clients have an empty role.
func (h *Hub) Permits(role, collection string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	allowed, ok := h.restricted[collection]
	return !ok || allowed[role]
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish queues ev for every interested client. It never blocks once the
// hub has stopped.
func (h *Hub) Publish(ev ChangeEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to marshal change event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- broadcast{collection: ev.Collection, message: data}:
	case <-h.done:
	}
}

// ClientCount reports the number of registered clients, or 0 once stopped.
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
