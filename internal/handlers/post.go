package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/repository"
	"pockettrip-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PostHandler handles social feed HTTP requests
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var input services.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Content == "" {
		respondError(w, "content is required", http.StatusBadRequest)
		return
	}

	post, err := h.postService.CreatePost(ctx, userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create post")
		respondError(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("post_id", post.ID).
		Msg("Post created")

	respondJSON(w, http.StatusOK, post)
}

// ListFeed handles GET /api/v1/posts
func (h *PostHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsedOffset
		}
	}

	posts, total, err := h.postService.ListFeed(ctx, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list feed")
		respondError(w, "Failed to list feed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"total": total,
	})
}

// LikePost handles POST /api/v1/posts/{post_id}/like
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	postID := chi.URLParam(r, "post_id")

	likes, err := h.postService.LikePost(ctx, userID, postID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("post_id", postID).Msg("Failed to like post")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		respondError(w, "Failed to like post", statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post_id":     postID,
		"likes_count": likes,
	})
}
