package services

import (
	"context"

	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/repository"
)

// PlaceService handles discover-tab place listings
type PlaceService struct {
	placeRepo *repository.PlaceRepository
}

// NewPlaceService creates a new place service
func NewPlaceService(placeRepo *repository.PlaceRepository) *PlaceService {
	return &PlaceService{placeRepo: placeRepo}
}

// ListPlaces returns recommended places, optionally filtered by category
func (s *PlaceService) ListPlaces(ctx context.Context, category string, limit int) ([]*models.Place, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.placeRepo.List(ctx, category, limit)
}
