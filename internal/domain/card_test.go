package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	deckID := uuid.New()
	content := json.RawMessage(`{"front": "What is Go?", "back": "A programming language"}`)

	card, err := NewCard(userID, deckID, content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if card.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, card.UserID)
	}
	if card.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, card.DeckID)
	}
	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	if _, err = NewCard(uuid.Nil, deckID, content); err != ErrCardUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardUserIDEmpty, err)
	}
	if _, err = NewCard(userID, uuid.Nil, content); err != ErrCardDeckIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardDeckIDEmpty, err)
	}
	if _, err = NewCard(userID, deckID, json.RawMessage(`{broken`)); err != ErrCardContentInvalid {
		t.Errorf("Expected error %v, got %v", ErrCardContentInvalid, err)
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel()
	card := &Card{UserID: uuid.New(), DeckID: uuid.New()}
	if err := card.Validate(); err != ErrCardIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardIDEmpty, err)
	}
}

func TestStudyCardDueDate(t *testing.T) {
	t.Parallel()
	if (StudyCard{IsNew: true}).DueDate() != nil {
		t.Error("Expected nil due date for unscheduled card")
	}
}
