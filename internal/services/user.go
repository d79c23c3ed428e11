package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	jwtExpDays = 365

	defaultFullName = "Travel Explorer"

	// Points awarded for in-app activity
	PointsTripCreated = 50
	PointsPostCreated = 20
)

// tierThresholds maps minimum points to a tier name, checked highest first
var tierThresholds = []struct {
	minPoints int
	name      string
}{
	{5000, "Globetrotter"},
	{1500, "Adventurer"},
	{500, "Explorer"},
	{0, "Wanderer"},
}

// UserService handles user-related business logic
type UserService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user for the given email, or returns the existing one,
// along with a fresh token
func (s *UserService) Register(ctx context.Context, email, fullName string) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		token, err := s.GenerateJWT(existing)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate token: %w", err)
		}
		return existing, token, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if fullName == "" {
		fullName = defaultFullName
	}
	now := time.Now()
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		FullName: fullName,
		Preferences: map[string]any{
			"onboardingCompleted": false,
		},
		Points:    0,
		Tier:      TierForPoints(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// EnsureUser guarantees a user row exists for an authenticated caller.
// It is an idempotent upsert; concurrent calls for the same id are safe.
func (s *UserService) EnsureUser(ctx context.Context, identity Identity) error {
	fullName := identity.FullName
	if fullName == "" {
		fullName = defaultFullName
	}
	now := time.Now()
	return s.userRepo.Upsert(ctx, &models.User{
		ID:       identity.UserID,
		Email:    identity.Email,
		FullName: fullName,
		Preferences: map[string]any{
			"onboardingCompleted": true,
		},
		Points:    0,
		Tier:      TierForPoints(0),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// GetProfile retrieves a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdatePreferences replaces a user's preference map
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, preferences map[string]any) error {
	if preferences == nil {
		return fmt.Errorf("preferences are required")
	}
	return s.userRepo.UpdatePreferences(ctx, userID, preferences)
}

// AwardPoints adds activity points and recomputes the user's tier.
// Failures are logged, not propagated; gamification never blocks the
// action that earned the points.
func (s *UserService) AwardPoints(ctx context.Context, userID string, points int) {
	total, err := s.userRepo.AddPoints(ctx, userID, points)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Int("points", points).Msg("Failed to award points")
		return
	}
	if err := s.userRepo.UpdateTier(ctx, userID, TierForPoints(total)); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update tier")
	}
}

// TierForPoints returns the gamification tier for a point total
func TierForPoints(points int) string {
	for _, tier := range tierThresholds {
		if points >= tier.minPoints {
			return tier.name
		}
	}
	return tierThresholds[len(tierThresholds)-1].name
}

// GenerateJWT generates a JWT token carrying the user's identity
func (s *UserService) GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"exp":       time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the caller's identity
func (s *UserService) ValidateJWT(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id not found in token")
	}

	identity := Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if fullName, ok := claims["full_name"].(string); ok {
		identity.FullName = fullName
	}
	return identity, nil
}
