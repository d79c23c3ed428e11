package handlers

import (
	"encoding/json"
	"net/http"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MediaHandler handles media upload HTTP requests
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// Upload handles POST /api/v1/media/upload
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Filename == "" {
		respondError(w, "filename is required", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg" // Default
	}

	response, err := h.mediaService.GetPreSignedURL(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("filename", req.Filename).
			Msg("Failed to generate pre-signed URL")
		respondError(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("media_id", response.MediaID).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusOK, response)
}
