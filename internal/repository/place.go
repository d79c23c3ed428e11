package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pockettrip-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaceRepository handles database operations for discoverable places
type PlaceRepository struct {
	db *pgxpool.Pool
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// List retrieves places, optionally filtered by category, highest rated first
func (r *PlaceRepository) List(ctx context.Context, category string, limit int) ([]*models.Place, error) {
	query := `
		SELECT id, name, description, location, category, rating, price_range, operating_hours, created_at, updated_at
		FROM places
	`
	args := []any{}
	if category != "" {
		query += ` WHERE $1 = ANY(category)`
		args = append(args, category)
	}
	query += fmt.Sprintf(` ORDER BY rating DESC NULLS LAST LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var places []*models.Place
	for rows.Next() {
		var place models.Place
		var location, hours []byte
		err := rows.Scan(
			&place.ID, &place.Name, &place.Description, &location,
			&place.Category, &place.Rating, &place.PriceRange, &hours,
			&place.CreatedAt, &place.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		if len(location) > 0 {
			if err := json.Unmarshal(location, &place.Location); err != nil {
				return nil, fmt.Errorf("failed to unmarshal location: %w", err)
			}
		}
		if len(hours) > 0 {
			if err := json.Unmarshal(hours, &place.OperatingHours); err != nil {
				return nil, fmt.Errorf("failed to unmarshal operating hours: %w", err)
			}
		}
		places = append(places, &place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}
	return places, nil
}
