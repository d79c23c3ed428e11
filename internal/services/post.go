package services

import (
	"context"
	"fmt"
	"time"

	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/repository"

	"github.com/google/uuid"
)

// CreatePostInput is the payload for creating a feed post
type CreatePostInput struct {
	TripID    *string        `json:"trip_id,omitempty"`
	Content   string         `json:"content"`
	MediaURLs []string       `json:"media_urls,omitempty"`
	Location  map[string]any `json:"location,omitempty"`
}

// PostService handles social feed business logic
type PostService struct {
	postRepo    *repository.PostRepository
	userService *UserService
	hub         *FeedHub
}

// NewPostService creates a new post service
func NewPostService(postRepo *repository.PostRepository, userService *UserService, hub *FeedHub) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userService: userService,
		hub:         hub,
	}
}

// CreatePost validates and persists a feed post, awards points, and pushes
// a live feed event
func (s *PostService) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*models.Post, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("content is required")
	}

	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		TripID:    input.TripID,
		Content:   input.Content,
		MediaURLs: input.MediaURLs,
		Location:  input.Location,
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.userService.AwardPoints(ctx, userID, PointsPostCreated)

	if s.hub != nil {
		s.hub.Broadcast(FeedEvent{
			Type:      FeedEventPostCreated,
			Timestamp: time.Now().Unix(),
			PostID:    created.ID,
			UserID:    userID,
			Post:      created,
		})
	}
	return created, nil
}

// ListFeed returns the global feed with pagination
func (s *PostService) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListFeed(ctx, limit, offset)
}

// LikePost bumps a post's like counter and pushes a live feed event
func (s *PostService) LikePost(ctx context.Context, userID, postID string) (int, error) {
	likes, err := s.postRepo.IncrementLikes(ctx, postID)
	if err != nil {
		return 0, err
	}

	if s.hub != nil {
		s.hub.Broadcast(FeedEvent{
			Type:      FeedEventPostLiked,
			Timestamp: time.Now().Unix(),
			PostID:    postID,
			UserID:    userID,
			Likes:     likes,
		})
	}
	return likes, nil
}
