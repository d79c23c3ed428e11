package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pockettrip-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *pgxpool.Pool
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, user_id, title, destination, start_date, end_date, budget, style, status, itinerary, created_at, updated_at`

// Create inserts a trip and returns the persisted row, including the
// database-assigned timestamps
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	itinerary, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	query := `
		INSERT INTO trips (id, user_id, title, destination, start_date, end_date, budget, style, status, itinerary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + tripColumns
	row := r.db.QueryRow(ctx, query,
		trip.ID, trip.UserID, trip.Title, trip.Destination,
		trip.StartDate, trip.EndDate, trip.Budget, trip.Style,
		string(trip.Status), itinerary,
	)
	created, err := scanTrip(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return created, nil
}

// GetByID retrieves a trip by ID
func (r *TripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	trip, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("trip not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListByUser retrieves a user's trips, newest first
func (r *TripRepository) ListByUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}
	return trips, nil
}

// UpdateStatus updates the lifecycle status of a trip
func (r *TripRepository) UpdateStatus(ctx context.Context, tripID string, status models.TripStatus) error {
	query := `UPDATE trips SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, string(status), tripID)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip not found: %w", ErrNotFound)
	}
	return nil
}

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var trip models.Trip
	var status string
	var itinerary []byte
	err := row.Scan(
		&trip.ID, &trip.UserID, &trip.Title, &trip.Destination,
		&trip.StartDate, &trip.EndDate, &trip.Budget, &trip.Style,
		&status, &itinerary, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	trip.Status = models.ParseTripStatus(status)
	if len(itinerary) > 0 {
		if err := json.Unmarshal(itinerary, &trip.Itinerary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
		}
	}
	return &trip, nil
}
