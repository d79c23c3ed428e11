package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pockettrip-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository handles database operations for feed posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, user_id, trip_id, content, media_urls, location, likes_count, created_at, updated_at`

// Create inserts a post and returns the persisted row
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	var location []byte
	if post.Location != nil {
		var err error
		location, err = json.Marshal(post.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal location: %w", err)
		}
	}

	query := `
		INSERT INTO posts (id, user_id, trip_id, content, media_urls, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + postColumns
	row := r.db.QueryRow(ctx, query,
		post.ID, post.UserID, post.TripID, post.Content, post.MediaURLs, location,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

// ListFeed retrieves the global feed, newest first, with pagination
func (r *PostRepository) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	countQuery := `SELECT COUNT(*) FROM posts`
	var total int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, total, nil
}

// IncrementLikes atomically bumps the like counter and returns the new value
func (r *PostRepository) IncrementLikes(ctx context.Context, postID string) (int, error) {
	query := `UPDATE posts SET likes_count = likes_count + 1, updated_at = now() WHERE id = $1 RETURNING likes_count`
	var likes int
	if err := r.db.QueryRow(ctx, query, postID).Scan(&likes); err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("post not found: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return likes, nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var location []byte
	err := row.Scan(
		&post.ID, &post.UserID, &post.TripID, &post.Content,
		&post.MediaURLs, &location, &post.LikesCount,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(location) > 0 {
		if err := json.Unmarshal(location, &post.Location); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location: %w", err)
		}
	}
	return &post, nil
}
