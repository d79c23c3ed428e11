package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pockettrip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTripStore records created trips and echoes them back the way the
// database would, with assigned timestamps.
type fakeTripStore struct {
	created []*models.Trip
	fail    bool
}

func (f *fakeTripStore) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if f.fail {
		return nil, fmt.Errorf("connection refused")
	}
	stored := *trip
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func TestExtractDestination_KnownDestinations(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	for _, dest := range knownDestinations {
		assert.Equal(t, dest, s.ExtractDestination("I want to visit "+dest+" next month"), dest)
	}
}

func TestExtractDestination_CaseInsensitive(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	assert.Equal(t, "Chiang Mai", s.ExtractDestination("take me to CHIANG MAI please"))
	assert.Equal(t, "Phuket", s.ExtractDestination("phuket beaches!"))
}

func TestExtractDestination_ListOrderWins(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	// Bangkok appears first in the text, but Chiang Mai comes first in
	// the known list.
	assert.Equal(t, "Chiang Mai", s.ExtractDestination("Bangkok or Chiang Mai?"))
}

func TestExtractDestination_Fallback(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	assert.Equal(t, "Bangkok", s.ExtractDestination("somewhere warm with beaches"))
}

func TestExtractDuration(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	assert.Equal(t, 4, s.ExtractDuration("a trip for 4 days"))
	assert.Equal(t, 1, s.ExtractDuration("just 1 day"))
	assert.Equal(t, 10, s.ExtractDuration("10 DAYS in the mountains"))
	assert.Equal(t, 7, s.ExtractDuration("first 7 days then 3 days more"))
	assert.Equal(t, 0, s.ExtractDuration("a layover of 0 days"))
	assert.Equal(t, 3, s.ExtractDuration("a nice long trip"))
}

func TestExtractBudget(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	assert.Equal(t, float64(8000), s.ExtractBudget("with 8000 baht budget"))
	assert.Equal(t, float64(500), s.ExtractBudget("around 500 ฿"))
	assert.Equal(t, float64(200*35), s.ExtractBudget("I have 200 dollars"))
	assert.Equal(t, float64(80*35), s.ExtractBudget("about 80 $ to spend"))
	assert.Equal(t, float64(150*35), s.ExtractBudget("150 USD total"))
	assert.Equal(t, float64(15000), s.ExtractBudget("money is no object"))
}

func TestPlacesFor_CuratedOrder(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	places := s.PlacesFor("Chiang Mai")
	require.Len(t, places, 3)
	assert.Equal(t, "Elephant Nature Park", places[0].Name)
	assert.Equal(t, "Sunday Walking Street", places[1].Name)
	assert.Equal(t, "Sticky Waterfall", places[2].Name)

	for _, place := range places {
		assert.NotEmpty(t, place.Description)
		assert.NotZero(t, place.Lat)
		assert.NotZero(t, place.Lng)
		assert.Contains(t, []string{"฿", "฿฿", "฿฿฿", "฿฿฿฿"}, place.PriceRange)
	}
}

func TestPlacesFor_CuratedNeverEmpty(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	for dest := range curatedPlaces {
		assert.NotEmpty(t, s.PlacesFor(dest), dest)
	}
}

func TestPlacesFor_GenericCityCenter(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	places := s.PlacesFor("Krabi")
	require.Len(t, places, 1)
	assert.Equal(t, "Krabi City Center", places[0].Name)
	assert.InDelta(t, 8.0863, places[0].Lat, 0.001)
	assert.InDelta(t, 98.9063, places[0].Lng, 0.001)
}

func TestPlacesFor_UnknownDestinationDefaultCoord(t *testing.T) {
	t.Parallel()
	s := NewTripSynthesizer(nil)

	places := s.PlacesFor("Atlantis")
	require.Len(t, places, 1)
	assert.Equal(t, "Atlantis City Center", places[0].Name)
	assert.InDelta(t, 13.7563, places[0].Lat, 0.001)
	assert.InDelta(t, 100.5018, places[0].Lng, 0.001)
}

func TestSynthesize_FullTrip(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := NewTripSynthesizer(store)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	trip, err := s.Synthesize(context.Background(),
		"user-1", "Create a trip to Chiang Mai for 4 days with 8000 baht budget")
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	assert.Equal(t, "user-1", trip.UserID)
	assert.Equal(t, "Chiang Mai", trip.Destination)
	assert.Equal(t, "Trip to Chiang Mai", trip.Title)
	assert.Equal(t, models.StatusPlanning, trip.Status)

	require.NotNil(t, trip.StartDate)
	require.NotNil(t, trip.EndDate)
	assert.Equal(t, now.AddDate(0, 0, 7), *trip.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 7+4), *trip.EndDate)
	assert.True(t, trip.EndDate.After(*trip.StartDate))

	require.NotNil(t, trip.Budget)
	assert.Equal(t, float64(8000), *trip.Budget)

	require.Len(t, trip.Itinerary.Places, 3)
	assert.Equal(t, "Elephant Nature Park", trip.Itinerary.Places[0].Name)
	assert.NotEmpty(t, trip.Itinerary.Description)
}

func TestSynthesize_EndAfterStartWithDefaults(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := NewTripSynthesizer(store)

	trip, err := s.Synthesize(context.Background(), "user-1", "plan something fun")
	require.NoError(t, err)
	assert.True(t, trip.EndDate.After(*trip.StartDate))
	assert.Equal(t, "Bangkok", trip.Destination)
	require.NotNil(t, trip.Budget)
	assert.Equal(t, float64(15000), *trip.Budget)
}

func TestSynthesize_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{fail: true}
	s := NewTripSynthesizer(store)

	_, err := s.Synthesize(context.Background(), "user-1", "Create a trip to Bangkok")
	require.Error(t, err)
	assert.Empty(t, store.created)
}
