package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pockettrip-backend/internal/middleware"
	"pockettrip-backend/internal/models"
	"pockettrip-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTripStore struct {
	created []*models.Trip
}

func (s *stubTripStore) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	stored := *trip
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.created = append(s.created, &stored)
	return &stored, nil
}

type stubUsers struct{}

func (s *stubUsers) EnsureUser(ctx context.Context, identity services.Identity) error {
	return nil
}

func newChatTestServer(t *testing.T, store *stubTripStore) (*httptest.Server, string) {
	t.Helper()

	userService := services.NewUserService(nil, "test-secret")
	chatService := services.NewChatService(
		&stubUsers{},
		services.NewTripSynthesizer(store),
		services.NewScriptedResponder(func(n int) int { return 0 }),
		services.NewDelegateClient(time.Second, nil),
	)
	chatHandler := NewChatHandler(chatService)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(userService))
		r.Post("/api/v1/chat", chatHandler.Chat)
	})

	token, err := userService.GenerateJWT(&models.User{
		ID:       "user-1",
		Email:    "test@example.com",
		FullName: "Test Traveler",
	})
	require.NoError(t, err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, token
}

func postChat(t *testing.T, server *httptest.Server, token, body string) (*http.Response, services.ChatResponse) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/chat", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var chatResp services.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chatResp))
	return resp, chatResp
}

func TestChatEndpoint_CreateTrip(t *testing.T) {
	t.Parallel()

	store := &stubTripStore{}
	server, token := newChatTestServer(t, store)

	resp, chatResp := postChat(t, server, token,
		`{"message":"Create a trip to Chiang Mai for 4 days with 8000 baht budget","action":"create_trip"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "trip_created", chatResp.Action)
	assert.NotNil(t, chatResp.Trip)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Chiang Mai", store.created[0].Destination)
}

func TestChatEndpoint_Chat(t *testing.T) {
	t.Parallel()

	server, token := newChatTestServer(t, &stubTripStore{})

	resp, chatResp := postChat(t, server, token,
		`{"message":"What's a good budget for Thailand?","action":"chat"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "chat", chatResp.Action)
	assert.NotEmpty(t, chatResp.Response)
	assert.Nil(t, chatResp.Trip)
}

func TestChatEndpoint_RequiresAuth(t *testing.T) {
	t.Parallel()

	server, _ := newChatTestServer(t, &stubTripStore{})

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/chat",
		strings.NewReader(`{"message":"hi","action":"chat"}`))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	t.Parallel()

	server, token := newChatTestServer(t, &stubTripStore{})

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/chat", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
