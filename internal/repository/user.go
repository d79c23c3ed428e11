package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pockettrip-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `
		INSERT INTO users (id, email, full_name, avatar_url, preferences, points, tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.AvatarURL, prefs,
		user.Points, user.Tier, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Upsert inserts a user row if none exists for the id. Concurrent calls for
// the same id are safe; the existing row is left untouched.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `
		INSERT INTO users (id, email, full_name, avatar_url, preferences, points, tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.AvatarURL, prefs,
		user.Points, user.Tier, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, full_name, avatar_url, preferences, points, tier, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, full_name, avatar_url, preferences, points, tier, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// UpdatePreferences replaces the preference map for a user
func (r *UserRepository) UpdatePreferences(ctx context.Context, userID string, preferences map[string]any) error {
	prefs, err := json.Marshal(preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `UPDATE users SET preferences = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Exec(ctx, query, prefs, userID)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return nil
}

// AddPoints atomically adds points to a user and returns the new total
func (r *UserRepository) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	query := `UPDATE users SET points = points + $1, updated_at = now() WHERE id = $2 RETURNING points`
	var points int
	if err := r.db.QueryRow(ctx, query, delta, userID).Scan(&points); err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("failed to add points: %w", err)
	}
	return points, nil
}

// UpdateTier sets the gamification tier for a user
func (r *UserRepository) UpdateTier(ctx context.Context, userID, tier string) error {
	query := `UPDATE users SET tier = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, tier, userID)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var prefs []byte
	err := row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.AvatarURL, &prefs,
		&user.Points, &user.Tier, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
		}
	}
	return &user, nil
}
