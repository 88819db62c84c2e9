package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
	"github.com/stretchr/testify/mock"
)

// CardStore is a testify mock of store.CardStore.
type CardStore struct {
	mock.Mock
}

var _ store.CardStore = (*CardStore)(nil)

// CreateDeck is a mock implementation of store.CardStore.CreateDeck
func (m *CardStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	return m.Called(ctx, deck).Error(0)
}

// GetDeck is a mock implementation of store.CardStore.GetDeck
func (m *CardStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if deck, ok := args.Get(0).(*domain.Deck); ok {
		return deck, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateMultiple is a mock implementation of store.CardStore.CreateMultiple
func (m *CardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	return m.Called(ctx, cards).Error(0)
}

// GetByID is a mock implementation of store.CardStore.GetByID
func (m *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListDue is a mock implementation of store.CardStore.ListDue
func (m *CardStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	now time.Time,
) ([]domain.StudyCard, error) {
	args := m.Called(ctx, userID, deckID, now)
	return studyCards(args), args.Error(1)
}

// ListNew is a mock implementation of store.CardStore.ListNew
func (m *CardStore) ListNew(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	limit int,
) ([]domain.StudyCard, error) {
	args := m.Called(ctx, userID, deckID, limit)
	return studyCards(args), args.Error(1)
}

// CountNew is a mock implementation of store.CardStore.CountNew
func (m *CardStore) CountNew(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// ListByDeck is a mock implementation of store.CardStore.ListByDeck
func (m *CardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.StudyCard, error) {
	args := m.Called(ctx, deckID)
	return studyCards(args), args.Error(1)
}

// ListDueDatesUntil is a mock implementation of store.CardStore.ListDueDatesUntil
func (m *CardStore) ListDueDatesUntil(ctx context.Context, userID uuid.UUID, until time.Time) ([]time.Time, error) {
	args := m.Called(ctx, userID, until)
	if dates, ok := args.Get(0).([]time.Time); ok {
		return dates, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.CardStore.WithTx
func (m *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	if ret, ok := m.Called(tx).Get(0).(store.CardStore); ok {
		return ret
	}
	return m
}

func studyCards(args mock.Arguments) []domain.StudyCard {
	if cards, ok := args.Get(0).([]domain.StudyCard); ok {
		return cards
	}
	return nil
}

// hasExpectation reports whether an expectation was registered for method.
func hasExpectation(m *mock.Mock, method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}
