package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pockettrip-backend/internal/models"

	"github.com/google/uuid"
)

const (
	defaultDurationDays = 3
	defaultBudgetBaht   = 15000
	bahtPerDollar       = 35
	departureLeadDays   = 7
	fallbackDestination = "Bangkok"
)

// knownDestinations is scanned in order; the first entry found in the
// message wins, regardless of where it appears in the text.
var knownDestinations = []string{
	"Chiang Mai",
	"Bangkok",
	"Phuket",
	"Krabi",
	"Pai",
	"Koh Samui",
	"Ayutthaya",
	"Tokyo",
	"Kyoto",
	"Osaka",
	"Seoul",
	"Singapore",
	"Bali",
	"Hanoi",
}

// destinationCoords maps known destinations to a representative coordinate,
// used for destinations without a curated place list.
var destinationCoords = map[string][2]float64{
	"Chiang Mai": {18.7883, 98.9853},
	"Bangkok":    {13.7563, 100.5018},
	"Phuket":     {7.8804, 98.3923},
	"Krabi":      {8.0863, 98.9063},
	"Pai":        {19.3581, 98.4418},
	"Koh Samui":  {9.5120, 100.0136},
	"Ayutthaya":  {14.3532, 100.5684},
	"Tokyo":      {35.6762, 139.6503},
	"Kyoto":      {35.0116, 135.7681},
	"Osaka":      {34.6937, 135.5023},
	"Seoul":      {37.5665, 126.9780},
	"Singapore":  {1.3521, 103.8198},
	"Bali":       {-8.4095, 115.1889},
	"Hanoi":      {21.0285, 105.8542},
}

// defaultCoord is the Bangkok city center, used when the destination is
// entirely unknown.
var defaultCoord = [2]float64{13.7563, 100.5018}

// curatedPlaces maps destinations to a hand-picked, ordered itinerary.
// List order is visiting order.
var curatedPlaces = map[string][]models.ItineraryPlace{
	"Chiang Mai": {
		{
			Name:        "Elephant Nature Park",
			Description: "Ethical elephant sanctuary with morning feeding sessions",
			Lat:         19.2146, Lng: 98.8563,
			PriceRange: "฿฿", Category: "Nature",
		},
		{
			Name:        "Sunday Walking Street",
			Description: "Vibrant night market with local crafts and street food",
			Lat:         18.7884, Lng: 98.9853,
			PriceRange: "฿", Category: "Culture",
		},
		{
			Name:        "Sticky Waterfall",
			Description: "Unique limestone waterfall you can climb barefoot",
			Lat:         19.1610, Lng: 99.0683,
			PriceRange: "฿", Category: "Adventure",
		},
	},
	"Bangkok": {
		{
			Name:        "Grand Palace",
			Description: "Former royal residence with the Emerald Buddha temple",
			Lat:         13.7500, Lng: 100.4913,
			PriceRange: "฿฿", Category: "Culture",
		},
		{
			Name:        "Chatuchak Weekend Market",
			Description: "One of the world's largest markets with over 15,000 stalls",
			Lat:         13.7999, Lng: 100.5502,
			PriceRange: "฿", Category: "Shopping",
		},
		{
			Name:        "Wat Arun",
			Description: "Riverside temple of dawn, best viewed at sunset",
			Lat:         13.7437, Lng: 100.4888,
			PriceRange: "฿", Category: "Culture",
		},
	},
	"Phuket": {
		{
			Name:        "Big Buddha",
			Description: "45-metre marble Buddha overlooking the island",
			Lat:         7.8276, Lng: 98.3122,
			PriceRange: "฿", Category: "Culture",
		},
		{
			Name:        "Old Phuket Town",
			Description: "Sino-Portuguese shophouses, cafes and street art",
			Lat:         7.8850, Lng: 98.3876,
			PriceRange: "฿", Category: "Culture",
		},
	},
	"Tokyo": {
		{
			Name:        "Senso-ji Temple",
			Description: "Tokyo's oldest temple with the Nakamise shopping street",
			Lat:         35.7148, Lng: 139.7967,
			PriceRange: "฿", Category: "Culture",
		},
		{
			Name:        "Shibuya Crossing",
			Description: "The world's busiest pedestrian crossing",
			Lat:         35.6595, Lng: 139.7005,
			PriceRange: "฿", Category: "City",
		},
		{
			Name:        "Tsukiji Outer Market",
			Description: "Fresh seafood stalls and street food near the old fish market",
			Lat:         35.6655, Lng: 139.7708,
			PriceRange: "฿฿", Category: "Food",
		},
	},
}

var (
	durationPattern = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	budgetPattern   = regexp.MustCompile(`(?i)(\d+)\s*(baht|฿|dollars?|\$|usd)`)
)

// tripStore persists synthesized trips
type tripStore interface {
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
}

// TripSynthesizer builds a complete trip from an unstructured message
type TripSynthesizer struct {
	trips tripStore
	now   func() time.Time
}

// NewTripSynthesizer creates a new trip synthesizer
func NewTripSynthesizer(trips tripStore) *TripSynthesizer {
	return &TripSynthesizer{
		trips: trips,
		now:   time.Now,
	}
}

// ExtractDestination returns the first known destination mentioned in the
// message, scanning the known list in order, or the fallback destination.
func (s *TripSynthesizer) ExtractDestination(message string) string {
	lower := strings.ToLower(message)
	for _, dest := range knownDestinations {
		if strings.Contains(lower, strings.ToLower(dest)) {
			return dest
		}
	}
	return fallbackDestination
}

// ExtractDuration returns the trip duration in days from the first
// "<n> day(s)" occurrence. The default of 3 applies only when the message
// names no duration at all; an explicit "0 days" stays 0.
func (s *TripSynthesizer) ExtractDuration(message string) int {
	match := durationPattern.FindStringSubmatch(message)
	if match == nil {
		return defaultDurationDays
	}
	days, err := strconv.Atoi(match[1])
	if err != nil {
		return defaultDurationDays
	}
	return days
}

// ExtractBudget returns the trip budget in baht. Dollar amounts are
// converted at a fixed rate; without any amount the default applies.
func (s *TripSynthesizer) ExtractBudget(message string) float64 {
	match := budgetPattern.FindStringSubmatch(message)
	if match == nil {
		return defaultBudgetBaht
	}
	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return defaultBudgetBaht
	}
	unit := strings.ToLower(match[2])
	if unit == "$" || unit == "usd" || strings.HasPrefix(unit, "dollar") {
		return amount * bahtPerDollar
	}
	return amount
}

// PlacesFor returns the curated itinerary for a destination, or a single
// generic city-center stop for destinations without one.
func (s *TripSynthesizer) PlacesFor(destination string) []models.ItineraryPlace {
	if places, ok := curatedPlaces[destination]; ok {
		out := make([]models.ItineraryPlace, len(places))
		copy(out, places)
		return out
	}

	coord, ok := destinationCoords[destination]
	if !ok {
		coord = defaultCoord
	}
	return []models.ItineraryPlace{
		{
			Name:        destination + " City Center",
			Description: "Explore the heart of " + destination,
			Lat:         coord[0], Lng: coord[1],
			PriceRange: "฿฿", Category: "City",
		},
	}
}

// Synthesize builds a trip from the message and persists it, returning the
// stored record
func (s *TripSynthesizer) Synthesize(ctx context.Context, userID, message string) (*models.Trip, error) {
	destination := s.ExtractDestination(message)
	duration := s.ExtractDuration(message)
	budget := s.ExtractBudget(message)

	start := s.now().AddDate(0, 0, departureLeadDays)
	end := start.AddDate(0, 0, duration)

	trip := &models.Trip{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       "Trip to " + destination,
		Destination: destination,
		StartDate:   &start,
		EndDate:     &end,
		Budget:      &budget,
		Status:      models.StatusPlanning,
		Itinerary: models.Itinerary{
			Description: fmt.Sprintf("%d-day trip to %s with a budget of ฿%s",
				duration, destination, formatBaht(budget)),
			Places: s.PlacesFor(destination),
		},
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("failed to persist synthesized trip: %w", err)
	}
	return created, nil
}

func formatBaht(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
