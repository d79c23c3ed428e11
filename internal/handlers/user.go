package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/repository"
	"pockettrip-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest is the body for POST /api/v1/users
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// RegisterResponse carries the user and their access token
type RegisterResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Register(ctx, req.Email, req.FullName)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		respondError(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User registered")

	respondJSON(w, http.StatusOK, RegisterResponse{User: user, Token: token})
}

// GetProfile handles GET /api/v1/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		respondError(w, "Failed to get profile", statusCode)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfileRequest is the body for PATCH /api/v1/profile
type UpdateProfileRequest struct {
	Preferences map[string]any `json:"preferences"`
}

// UpdateProfile handles PATCH /api/v1/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Preferences == nil {
		respondError(w, "preferences is required", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdatePreferences(ctx, userID, req.Preferences); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update preferences")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		respondError(w, "Failed to update preferences", statusCode)
		return
	}

	user, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to reload profile")
		respondError(w, "Failed to reload profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
