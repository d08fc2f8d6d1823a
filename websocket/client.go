// websocket/client.go
package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/middleware"
	"github.com/rriehl64/collibra-app-sub009/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// Client is one change-feed connection. An empty collection set receives
// every event the client's role permits.
type Client struct {
	conn        *websocket.Conn
	send        chan []byte
	collections map[string]bool
	role        string
	remote      string
}

func (c *Client) wants(collection string) bool {
	return len(c.collections) == 0 || c.collections[collection]
}

// NewUpgrader allows the configured origins; "*" allows any.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range allowedOrigins {
				if o == "*" || strings.EqualFold(o, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ServeChanges upgrades the request and streams change events. The optional
// collection query parameter narrows the feed, e.g. ?collection=domains,policies.
// The caller's role comes from claims set by middleware.OptionalAuth; asking
// for a restricted collection without the role is refused before the upgrade.
func ServeChanges(h *Hub, upgrader *websocket.Upgrader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role string
		if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
			role = claims.Role
		}
		collections := map[string]bool{}
		for _, name := range strings.Split(r.URL.Query().Get("collection"), ",") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			if !h.Permits(role, name) {
				utils.RespondWithError(w, http.StatusForbidden, "Not authorized to subscribe to "+name)
				return
			}
			collections[name] = true
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		c := &Client{
			conn:        conn,
			send:        make(chan []byte, 256),
			collections: collections,
			role:        role,
			remote:      r.RemoteAddr,
		}

		if !h.add(c) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			conn.Close()
			return
		}
		logger.Debug("change feed client connected", zap.String("remote", c.remote), zap.String("role", c.role))

		go c.writePump()
		c.readPump(h)
	}
}

// readPump only drains control frames; the feed is one-way.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
