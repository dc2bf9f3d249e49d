// Package push delivers notifications to connected clients over WebSocket.
//
// Delivery is best effort: the durable notification row is written by the
// notification service before any push attempt, so a missing or broken
// connection never loses data.
package push

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teamhub-dev/teamhub-backend/internal/config"
	"github.com/teamhub-dev/teamhub-backend/internal/domain"
	"github.com/teamhub-dev/teamhub-backend/pkg/ctxutil"
)

// ErrNoConnection is returned when the recipient has no active connection.
var ErrNoConnection = errors.New("push: no active connection")

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// envelope is the wire format for pushed notifications.
type envelope struct {
	Type    string              `json:"type"`
	Payload domain.Notification `json:"payload"`
}

// Hub tracks active WebSocket connections keyed by user ID. A user may hold
// several connections (multiple tabs); Push writes to all of them.
type Hub struct {
	mu           sync.RWMutex
	conns        map[uuid.UUID]map[*websocket.Conn]struct{}
	writeTimeout time.Duration
	upgrader     websocket.Upgrader

	log *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(cfg config.Push, log *slog.Logger) *Hub {
	return &Hub{
		conns:        make(map[uuid.UUID]map[*websocket.Conn]struct{}),
		writeTimeout: cfg.WriteTimeout,
		upgrader:     websocket.Upgrader{},
		log:          log.With("component", "push"),
	}
}

// Attach registers a connection for the user.
func (h *Hub) Attach(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

// Detach removes a connection for the user and closes it.
func (h *Hub) Detach(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	h.remove(userID, conn)
	h.mu.Unlock()

	_ = conn.Close()
}

// remove must be called with h.mu held.
func (h *Hub) remove(userID uuid.UUID, conn *websocket.Conn) {
	conns, ok := h.conns[userID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.conns, userID)
	}
}

// Push writes the notification to every connection of the recipient.
// Returns ErrNoConnection when the user has no live connection, or the last
// write error when every write failed. Failed connections are dropped.
// The context is honored before any write is attempted; gorilla writes are
// bounded by the configured write deadline instead.
func (h *Hub) Push(ctx context.Context, userID uuid.UUID, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return ErrNoConnection
	}

	msg := envelope{Type: "notification", Payload: n}

	var delivered int
	var lastErr error
	for _, conn := range targets {
		_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			lastErr = err
			h.log.Warn("push write failed, dropping connection",
				"user_id", userID, "error", err)
			h.mu.Lock()
			h.remove(userID, conn)
			h.mu.Unlock()
			_ = conn.Close()
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return lastErr
	}
	return nil
}

// ServeHTTP upgrades the request to a WebSocket connection and keeps it
// registered until the client goes away. The user is taken from the request
// context; unauthenticated requests are rejected.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.Attach(userID, conn)
	defer h.Detach(userID, conn)

	done := make(chan struct{})
	defer close(done)

	go h.pingLoop(conn, done)

	// Clients do not speak to us; the read loop only notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read ended", "user_id", userID, "error", err)
			}
			return
		}
	}
}

func (h *Hub) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
