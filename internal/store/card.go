package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// CardStore defines persistence for decks and cards, including the joined
// views the study queue is built from.
type CardStore interface {
	// CreateDeck saves a new deck.
	CreateDeck(ctx context.Context, deck *domain.Deck) error

	// GetDeck retrieves a deck by ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// CreateMultiple saves cards. Run it inside a transaction for atomicity.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListDue returns the user's cards whose due date is at or before now,
	// earliest first. A nil deckID spans all decks.
	ListDue(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, now time.Time) ([]domain.StudyCard, error)

	// ListNew returns up to limit never-reviewed cards in creation order.
	ListNew(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, limit int) ([]domain.StudyCard, error)

	// CountNew returns the number of never-reviewed cards of the user.
	CountNew(ctx context.Context, userID uuid.UUID) (int, error)

	// ListByDeck returns every card of the deck with its schedule, if any.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.StudyCard, error)

	// ListDueDatesUntil returns the due dates of the user's scheduled cards
	// that fall at or before until, overdue ones included.
	ListDueDatesUntil(ctx context.Context, userID uuid.UUID, until time.Time) ([]time.Time, error)

	// WithTx returns a CardStore bound to tx.
	WithTx(tx *sql.Tx) CardStore
}

// ScheduleStore defines persistence for per-card scheduling state.
type ScheduleStore interface {
	// Get retrieves the schedule of a card without locking.
	// Returns ErrScheduleNotFound if the card was never initialized.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error)

	// GetForUpdate retrieves the schedule with SELECT FOR UPDATE.
	// Must run inside a transaction.
	// Returns ErrScheduleNotFound if the card was never initialized.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error)

	// CreateIfAbsent inserts s unless a row already exists for the card and
	// reports whether it inserted.
	CreateIfAbsent(ctx context.Context, s *domain.CardSchedule) (bool, error)

	// Upsert writes s, replacing any existing row for the card.
	Upsert(ctx context.Context, s *domain.CardSchedule) error

	// WithTx returns a ScheduleStore bound to tx.
	WithTx(tx *sql.Tx) ScheduleStore
}

// ReviewLogStore defines the append-only review audit log.
type ReviewLogStore interface {
	// Create appends a review record.
	Create(ctx context.Context, r *domain.ReviewRecord) error

	// ListSince returns the user's reviews at or after since, newest first.
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.ReviewRecord, error)

	// WithTx returns a ReviewLogStore bound to tx.
	WithTx(tx *sql.Tx) ReviewLogStore
}
