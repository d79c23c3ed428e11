package handlers

import (
	"encoding/json"
	"net/http"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ChatHandler handles AI assistant HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)
	if identity.UserID == "" {
		respondError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var req services.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Message == "" && req.DelegateResponse == "" {
		respondError(w, "message is required", http.StatusBadRequest)
		return
	}

	response := h.chatService.HandleMessage(ctx, identity, req)

	log.Info().
		Str("user_id", identity.UserID).
		Str("action", response.Action).
		Msg("Chat message handled")

	respondJSON(w, http.StatusOK, response)
}
