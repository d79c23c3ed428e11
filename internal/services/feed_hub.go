package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Feed event types pushed to connected clients
const (
	FeedEventPostCreated = "post_created"
	FeedEventPostLiked   = "post_liked"
)

// FeedEvent is a message pushed over the feed WebSocket
type FeedEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
	PostID    string `json:"post_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Likes     int    `json:"likes,omitempty"`
	Post      any    `json:"post,omitempty"`
}

// FeedHub manages WebSocket connections for live feed updates.
// The mutex also serializes writes; gorilla/websocket connections do not
// allow concurrent writers.
type FeedHub struct {
	mu          sync.Mutex
	connections map[string]*websocket.Conn
}

// NewFeedHub creates a new feed hub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a WebSocket connection for a user, replacing any
// existing one
func (h *FeedHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("Feed connection registered")
}

// Unregister removes a user's WebSocket connection
func (h *FeedHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[userID]; ok {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("Feed connection unregistered")
	}
}

// Broadcast pushes an event to every connected client
func (h *FeedHub) Broadcast(event FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal feed event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.connections {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", userID).
				Str("type", event.Type).
				Msg("Failed to push feed event")
		}
	}
}
