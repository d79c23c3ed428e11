package handlers

import (
	"net/http"
	"strconv"

	"pockettrip-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PlaceHandler handles discover-tab HTTP requests
type PlaceHandler struct {
	placeService *services.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
	}
}

// ListPlaces handles GET /api/v1/places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := r.URL.Query().Get("category")
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}

	places, err := h.placeService.ListPlaces(ctx, category, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list places")
		respondError(w, "Failed to list places", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"places": places,
		"total":  len(places),
	})
}
