package models

import "time"

// User represents a registered traveler
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	Preferences map[string]any `json:"preferences"`
	Points      int            `json:"points"`
	Tier        string         `json:"tier"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Trip represents a planned trip owned by a single user
type Trip struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Style       []string   `json:"style,omitempty"`
	Status      TripStatus `json:"status"`
	Itinerary   Itinerary  `json:"itinerary"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Itinerary is a trip's description plus its ordered place list.
// Place order is route order, not an unordered set.
type Itinerary struct {
	Description string           `json:"description,omitempty"`
	Places      []ItineraryPlace `json:"places,omitempty"`
}

// ItineraryPlace is a stop embedded in a trip itinerary
type ItineraryPlace struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PriceRange  string  `json:"price_range,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Post represents a social feed entry
type Post struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	TripID     *string        `json:"trip_id,omitempty"`
	Content    string         `json:"content"`
	MediaURLs  []string       `json:"media_urls,omitempty"`
	Location   map[string]any `json:"location,omitempty"`
	LikesCount int            `json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Place represents a discoverable point of interest
type Place struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Location       map[string]any `json:"location,omitempty"`
	Category       []string       `json:"category,omitempty"`
	Rating         *float64       `json:"rating,omitempty"`
	PriceRange     string         `json:"price_range,omitempty"`
	OperatingHours map[string]any `json:"operating_hours,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
