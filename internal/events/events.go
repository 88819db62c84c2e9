package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeReviewRecorded = "review.recorded"
	TypeStreakUpdated  = "streak.updated"
)

// Event is a domain event published after a successful commit.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// UserID is the user the event concerns; it keys Kafka partitioning
	UserID uuid.UUID `json:"user_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event with the specified type and payload.
func NewEvent(eventType string, userID uuid.UUID, payload any, now time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payloadBytes,
		CreatedAt: now,
	}, nil
}

// ReviewRecordedPayload describes a committed review.
type ReviewRecordedPayload struct {
	ReviewID      uuid.UUID `json:"review_id"`
	CardID        uuid.UUID `json:"card_id"`
	Quality       int       `json:"quality"`
	WasSuccessful bool      `json:"was_successful"`
	Strategy      string    `json:"strategy"`
	Interval      int       `json:"interval"`
	EaseFactor    float64   `json:"ease_factor"`
	DueDate       time.Time `json:"due_date"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

// StreakUpdatedPayload describes a committed streak transition.
type StreakUpdatedPayload struct {
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	Event          string `json:"streak_event"`
	PreviousStreak *int   `json:"previous_streak,omitempty"`
	DaysMissed     *int   `json:"days_missed,omitempty"`
	Milestone      *int   `json:"milestone,omitempty"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// NopEmitter drops every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
