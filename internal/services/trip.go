package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/repository"

	"github.com/google/uuid"
)

// ErrForbidden is returned when a caller touches a resource they do not own
var ErrForbidden = errors.New("forbidden")

// CreateTripInput is the explicit trip-creation payload
type CreateTripInput struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Style       []string   `json:"style,omitempty"`
}

// TripService handles trip-related business logic
type TripService struct {
	tripRepo    *repository.TripRepository
	userService *UserService
}

// NewTripService creates a new trip service
func NewTripService(tripRepo *repository.TripRepository, userService *UserService) *TripService {
	return &TripService{
		tripRepo:    tripRepo,
		userService: userService,
	}
}

// CreateTrip validates and persists an explicitly created trip. New trips
// always start in the planning state.
func (s *TripService) CreateTrip(ctx context.Context, userID string, input CreateTripInput) (*models.Trip, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return nil, fmt.Errorf("budget must not be negative")
	}
	if input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	trip := &models.Trip{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
		Style:       input.Style,
		Status:      models.StatusPlanning,
		Itinerary:   models.Itinerary{Description: input.Description},
	}

	created, err := s.tripRepo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.userService.AwardPoints(ctx, userID, PointsTripCreated)
	return created, nil
}

// ListTrips returns the caller's trips, newest first
func (s *TripService) ListTrips(ctx context.Context, userID string) ([]*models.Trip, error) {
	return s.tripRepo.ListByUser(ctx, userID)
}

// GetTrip retrieves a trip owned by the caller
func (s *TripService) GetTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, fmt.Errorf("trip belongs to another user: %w", ErrForbidden)
	}
	return trip, nil
}

// UpdateStatus moves a trip to a new lifecycle state. Only recognized
// states are accepted, and only by the owner.
func (s *TripService) UpdateStatus(ctx context.Context, userID, tripID string, status models.TripStatus) (*models.Trip, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unrecognized trip status %q", status)
	}

	trip, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.tripRepo.UpdateStatus(ctx, trip.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	trip.Status = status
	return trip, nil
}
