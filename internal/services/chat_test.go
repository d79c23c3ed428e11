package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pockettrip-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	ensured []Identity
	fail    bool
}

func (f *fakeUsers) EnsureUser(ctx context.Context, identity Identity) error {
	if f.fail {
		return fmt.Errorf("database unavailable")
	}
	f.ensured = append(f.ensured, identity)
	return nil
}

func newTestChatService(store *fakeTripStore, users *fakeUsers) *ChatService {
	return NewChatService(
		users,
		NewTripSynthesizer(store),
		NewScriptedResponder(pinned(0)),
		NewDelegateClient(2*time.Second, nil),
	)
}

var testIdentity = Identity{UserID: "user-1", Email: "test@example.com", FullName: "Test Traveler"}

func TestHandleMessage_CreateTripScenario(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	users := &fakeUsers{}
	s := newTestChatService(store, users)

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message: "Create a trip to Chiang Mai for 4 days with 8000 baht budget",
		Action:  ActionCreateTrip,
	})

	assert.Equal(t, ActionTripCreated, resp.Action)
	assert.NotEmpty(t, resp.Response)
	require.Len(t, users.ensured, 1)
	require.Len(t, store.created, 1)

	trip, ok := resp.Trip.(*models.Trip)
	require.True(t, ok)
	assert.Equal(t, "Chiang Mai", trip.Destination)
	require.NotNil(t, trip.Budget)
	assert.Equal(t, float64(8000), *trip.Budget)
	assert.Equal(t, 4, int(trip.EndDate.Sub(*trip.StartDate).Hours()/24))
	require.Len(t, trip.Itinerary.Places, 3)
	assert.Equal(t, "Elephant Nature Park", trip.Itinerary.Places[0].Name)
	assert.Equal(t, "Sunday Walking Street", trip.Itinerary.Places[1].Name)
	assert.Equal(t, "Sticky Waterfall", trip.Itinerary.Places[2].Name)
}

func TestHandleMessage_ChatScenario(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := newTestChatService(store, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message: "What's a good budget for Thailand?",
		Action:  ActionChat,
	})

	assert.Equal(t, ActionChat, resp.Action)
	assert.Contains(t, scriptedGroups[1].replies, resp.Response)
	assert.Nil(t, resp.Trip)
	assert.Empty(t, store.created, "chat must not persist trips")
}

func TestHandleMessage_DelegateUnreachableScenario(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := newTestChatService(store, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "Create a trip to Chiang Mai for 4 days",
		Action:      ActionCreateTrip,
		DelegateURL: "http://127.0.0.1:1/webhook",
	})

	assert.Equal(t, ActionError, resp.Action)
	assert.Equal(t, msgDelegateUnavailable, resp.Response)
	assert.Nil(t, resp.Trip)
	assert.Empty(t, store.created, "delegate failure must not fall back to synthesis")
}

func TestHandleMessage_DelegateShortCircuit(t *testing.T) {
	t.Parallel()

	var received DelegateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response": "Here's a plan from your workflow!",
		})
	}))
	defer server.Close()

	store := &fakeTripStore{}
	s := newTestChatService(store, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "Create a trip to Chiang Mai for 4 days",
		Action:      ActionCreateTrip,
		DelegateURL: server.URL,
	})

	assert.Equal(t, ActionDelegated, resp.Action)
	assert.Equal(t, "Here's a plan from your workflow!", resp.Response)
	assert.Empty(t, store.created, "delegate success must bypass local synthesis")

	assert.Equal(t, "user-1", received.UserID)
	assert.Equal(t, "test@example.com", received.UserEmail)
	assert.Equal(t, "user_message", received.EventType)
	assert.Equal(t, ActionCreateTrip, received.Action)
	assert.NotEmpty(t, received.Timestamp)
}

func TestHandleMessage_DelegateTripPassthrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":"done","trip":{"id":"ext-1","destination":"Osaka"}}`)
	}))
	defer server.Close()

	s := newTestChatService(&fakeTripStore{}, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "plan something",
		DelegateURL: server.URL,
	})

	assert.Equal(t, ActionDelegated, resp.Action)
	raw, ok := resp.Trip.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"ext-1","destination":"Osaka"}`, string(raw))
}

func TestHandleMessage_DelegateMissingResponseField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer server.Close()

	s := newTestChatService(&fakeTripStore{}, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "hello",
		DelegateURL: server.URL,
	})

	assert.Equal(t, ActionError, resp.Action)
	assert.Equal(t, msgDelegateNoResponse, resp.Response)
}

func TestHandleMessage_DelegateNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := newTestChatService(&fakeTripStore{}, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "hello",
		DelegateURL: server.URL,
	})

	assert.Equal(t, ActionError, resp.Action)
	assert.Equal(t, msgDelegateUnavailable, resp.Response)
}

func TestHandleMessage_PreSuppliedDelegateResponse(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := newTestChatService(store, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		DelegateResponse: "Already computed elsewhere.",
	})

	assert.Equal(t, ActionDelegated, resp.Action)
	assert.Equal(t, "Already computed elsewhere.", resp.Response)
	assert.Empty(t, store.created)
}

func TestHandleMessage_InvalidDelegateURL(t *testing.T) {
	t.Parallel()

	s := newTestChatService(&fakeTripStore{}, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message:     "hello",
		DelegateURL: "ftp://example.com/hook",
	})

	assert.Equal(t, ActionError, resp.Action)
	assert.Equal(t, msgDelegateBadURL, resp.Response)
}

func TestHandleMessage_SynthesisFailureDowngraded(t *testing.T) {
	t.Parallel()

	s := newTestChatService(&fakeTripStore{fail: true}, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message: "Create a trip to Bangkok for 3 days",
		Action:  ActionCreateTrip,
	})

	assert.Equal(t, ActionChat, resp.Action)
	assert.Equal(t, msgNeedMoreDetails, resp.Response)
	assert.Nil(t, resp.Trip)
}

func TestHandleMessage_EnsureUserFailureDoesNotBlock(t *testing.T) {
	t.Parallel()

	s := newTestChatService(&fakeTripStore{}, &fakeUsers{fail: true})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message: "where should I go?",
		Action:  ActionChat,
	})

	assert.Equal(t, ActionChat, resp.Action)
	assert.NotEmpty(t, resp.Response)
}

func TestHandleMessage_InferredCreateIntent(t *testing.T) {
	t.Parallel()

	store := &fakeTripStore{}
	s := newTestChatService(store, &fakeUsers{})

	resp := s.HandleMessage(context.Background(), testIdentity, ChatRequest{
		Message: "Please create a trip to Tokyo for 5 days",
	})

	assert.Equal(t, ActionTripCreated, resp.Action)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Tokyo", store.created[0].Destination)
}
