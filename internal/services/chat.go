package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Chat response action tags
const (
	ActionChat        = "chat"
	ActionCreateTrip  = "create_trip"
	ActionTripCreated = "trip_created"
	ActionDelegated   = "delegated"
	ActionError       = "error"
)

// Fixed user-facing messages for handled failure paths
const (
	msgDelegateUnavailable = "Sorry, I'm currently unavailable. Please try again later."
	msgDelegateNoResponse  = "Sorry, I'm having trouble connecting to my AI service. Please try again later."
	msgDelegateBadURL      = "The configured assistant webhook URL is not valid. Please check it in settings."
	msgNeedMoreDetails     = "I'd love to help plan that trip! Could you give me a bit more detail, like the destination and how many days you're going?"
)

// ChatRequest is an inbound assistant message
type ChatRequest struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	// DelegateURL, when set, routes the message to an external webhook
	// instead of local synthesis.
	DelegateURL string `json:"delegate_url,omitempty"`
	// DelegateResponse short-circuits the handler when the reply was
	// already computed elsewhere.
	DelegateResponse string `json:"delegate_response,omitempty"`
}

// ChatResponse is the assistant's structured reply. Every code path,
// including handled failures, produces one.
type ChatResponse struct {
	Response string `json:"response"`
	Action   string `json:"action"`
	Trip     any    `json:"trip,omitempty"`
}

// Identity carries the authenticated caller's details
type Identity struct {
	UserID   string
	Email    string
	FullName string
}

// userEnsurer guarantees a user row exists for an authenticated caller
type userEnsurer interface {
	EnsureUser(ctx context.Context, identity Identity) error
}

// ChatService classifies inbound messages and routes them to a delegate
// webhook, the trip synthesizer, or the scripted responder
type ChatService struct {
	users       userEnsurer
	synthesizer *TripSynthesizer
	responder   *ScriptedResponder
	delegate    *DelegateClient
}

// NewChatService creates a new chat service
func NewChatService(users userEnsurer, synthesizer *TripSynthesizer, responder *ScriptedResponder, delegate *DelegateClient) *ChatService {
	return &ChatService{
		users:       users,
		synthesizer: synthesizer,
		responder:   responder,
		delegate:    delegate,
	}
}

// HandleMessage processes one chat request end to end. It never returns an
// error; every outcome is a structured response with a readable message.
func (s *ChatService) HandleMessage(ctx context.Context, identity Identity, req ChatRequest) ChatResponse {
	// Make sure the user row exists before anything else. The upsert is
	// idempotent; a failure here must not block the conversation.
	if err := s.users.EnsureUser(ctx, identity); err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to ensure user exists")
	}

	// A reply already computed elsewhere is returned as-is.
	if req.DelegateResponse != "" {
		return ChatResponse{Response: req.DelegateResponse, Action: ActionDelegated}
	}

	if req.DelegateURL != "" && req.Message != "" {
		return s.handleDelegated(ctx, identity, req)
	}

	action := req.Action
	if action == "" {
		action = inferAction(req.Message)
	}

	if action == ActionCreateTrip {
		return s.handleCreateTrip(ctx, identity.UserID, req.Message)
	}
	return ChatResponse{Response: s.responder.Reply(req.Message), Action: ActionChat}
}

// handleDelegated forwards the message to the configured webhook. A
// configured delegate owns the conversation: its failures become apologies,
// never local synthesis.
func (s *ChatService) handleDelegated(ctx context.Context, identity Identity, req ChatRequest) ChatResponse {
	if err := s.delegate.ValidateURL(req.DelegateURL); err != nil {
		log.Warn().Err(err).Str("user_id", identity.UserID).Msg("Rejected delegate URL")
		return ChatResponse{Response: msgDelegateBadURL, Action: ActionError}
	}

	action := req.Action
	if action == "" {
		action = ActionChat
	}

	result, err := s.delegate.Send(ctx, req.DelegateURL, &DelegateRequest{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UserID:    identity.UserID,
		UserEmail: identity.Email,
		EventType: "user_message",
		Message:   req.Message,
		Action:    action,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Delegate call failed")
		return ChatResponse{Response: msgDelegateUnavailable, Action: ActionError}
	}

	if result.Response == "" {
		log.Warn().Str("user_id", identity.UserID).Msg("Delegate returned no response field")
		return ChatResponse{Response: msgDelegateNoResponse, Action: ActionError}
	}

	resp := ChatResponse{Response: result.Response, Action: ActionDelegated}
	if len(result.Trip) > 0 {
		resp.Trip = result.Trip
	}
	return resp
}

func (s *ChatService) handleCreateTrip(ctx context.Context, userID, message string) ChatResponse {
	trip, err := s.synthesizer.Synthesize(ctx, userID, message)
	if err != nil {
		// Storage failures are downgraded to a softer prompt for the
		// user; the real cause is only visible in the logs.
		log.Error().Err(err).Str("user_id", userID).Msg("Trip synthesis failed")
		return ChatResponse{Response: msgNeedMoreDetails, Action: ActionChat}
	}

	days := defaultDurationDays
	starts := "soon"
	if trip.StartDate != nil && trip.EndDate != nil {
		days = int(trip.EndDate.Sub(*trip.StartDate).Hours() / 24)
		starts = trip.StartDate.Format("January 2")
	}
	response := fmt.Sprintf(
		"I've created a %d-day trip to %s for you! It starts %s and covers %d great stops. Check your plans for the full itinerary.",
		days, trip.Destination, starts, len(trip.Itinerary.Places))

	return ChatResponse{Response: response, Action: ActionTripCreated, Trip: trip}
}

// inferAction recovers the intent when the client sent no action hint
func inferAction(message string) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "create trip") ||
		strings.Contains(lower, "plan trip") ||
		strings.Contains(lower, "make trip") ||
		strings.Contains(lower, "create a trip") ||
		strings.Contains(lower, "plan a trip") {
		return ActionCreateTrip
	}
	return ActionChat
}
