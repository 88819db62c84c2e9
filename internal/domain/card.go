package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardContentInvalid is returned when a card's content is not valid JSON.
	ErrCardContentInvalid = errors.New("card content must be valid JSON")
)

// Card is a flashcard owned by a user and filed in a deck.
// ConceptID links the card to an externally maintained ConceptMastery profile.
type Card struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	DeckID    uuid.UUID       `json:"deck_id"`
	ConceptID *uuid.UUID      `json:"concept_id,omitempty"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewCard creates a Card with a fresh ID.
func NewCard(userID, deckID uuid.UUID, content json.RawMessage) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}
	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}
	if len(c.Content) > 0 && !json.Valid(c.Content) {
		return ErrCardContentInvalid
	}
	return nil
}

// Deck groups a user's cards.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// StudyCard is a card together with its scheduling state, as handed to the
// presentation layer in a study queue.
type StudyCard struct {
	Card     Card          `json:"card"`
	Schedule *CardSchedule `json:"schedule,omitempty"`
	IsNew    bool          `json:"is_new"`
}

// DueDate returns the scheduled due date, or nil for never-reviewed cards.
func (s StudyCard) DueDate() *time.Time {
	if s.Schedule == nil {
		return nil
	}
	return s.Schedule.DueDate
}

// NextReviewInfo summarizes a deck for "all caught up" and "next review at" states.
type NextReviewInfo struct {
	DeckID      uuid.UUID  `json:"deck_id"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	TotalCards  int        `json:"total_cards"`
	DueNow      int        `json:"due_now"`
}
