package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/repository"
	"pockettrip-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TripHandler handles trip-related HTTP requests
type TripHandler struct {
	tripService *services.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var input services.CreateTripInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.CreateTrip(ctx, userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create trip")
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("trip_id", trip.ID).
		Str("destination", trip.Destination).
		Msg("Trip created")

	respondJSON(w, http.StatusOK, trip)
}

// ListTrips handles GET /api/v1/trips
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trips, err := h.tripService.ListTrips(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list trips")
		respondError(w, "Failed to list trips", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"trips": trips,
		"total": len(trips),
	})
}

// GetTrip handles GET /api/v1/trips/{trip_id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	trip, err := h.tripService.GetTrip(ctx, userID, tripID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to get trip")
		respondError(w, "Failed to get trip", tripErrorStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, trip)
}

// UpdateStatusRequest is the body for PATCH /api/v1/trips/{trip_id}/status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/trips/{trip_id}/status
func (h *TripHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	tripID := chi.URLParam(r, "trip_id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status := models.ParseTripStatus(req.Status)
	if !status.Valid() {
		respondError(w, "status must be one of PLANNING, BOOKED, COMPLETED", http.StatusBadRequest)
		return
	}

	trip, err := h.tripService.UpdateStatus(ctx, userID, tripID, status)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("trip_id", tripID).Msg("Failed to update trip status")
		respondError(w, "Failed to update trip status", tripErrorStatus(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("trip_id", tripID).
		Str("status", string(status)).
		Msg("Trip status updated")

	respondJSON(w, http.StatusOK, trip)
}

func tripErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
