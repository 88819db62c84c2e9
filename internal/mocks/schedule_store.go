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

// ScheduleStore is a testify mock of store.ScheduleStore.
type ScheduleStore struct {
	mock.Mock
}

var _ store.ScheduleStore = (*ScheduleStore)(nil)

// Get is a mock implementation of store.ScheduleStore.Get
func (m *ScheduleStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error) {
	return schedule(m.Called(ctx, userID, cardID))
}

// GetForUpdate is a mock implementation of store.ScheduleStore.GetForUpdate
func (m *ScheduleStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error) {
	return schedule(m.Called(ctx, userID, cardID))
}

// CreateIfAbsent is a mock implementation of store.ScheduleStore.CreateIfAbsent
func (m *ScheduleStore) CreateIfAbsent(ctx context.Context, s *domain.CardSchedule) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

// Upsert is a mock implementation of store.ScheduleStore.Upsert
func (m *ScheduleStore) Upsert(ctx context.Context, s *domain.CardSchedule) error {
	return m.Called(ctx, s).Error(0)
}

// WithTx is a mock implementation of store.ScheduleStore.WithTx
func (m *ScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	if ret, ok := m.Called(tx).Get(0).(store.ScheduleStore); ok {
		return ret
	}
	return m
}

func schedule(args mock.Arguments) (*domain.CardSchedule, error) {
	if s, ok := args.Get(0).(*domain.CardSchedule); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReviewLogStore is a testify mock of store.ReviewLogStore.
type ReviewLogStore struct {
	mock.Mock
}

var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// Create is a mock implementation of store.ReviewLogStore.Create
func (m *ReviewLogStore) Create(ctx context.Context, r *domain.ReviewRecord) error {
	return m.Called(ctx, r).Error(0)
}

// ListSince is a mock implementation of store.ReviewLogStore.ListSince
func (m *ReviewLogStore) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.ReviewRecord, error) {
	args := m.Called(ctx, userID, since)
	if records, ok := args.Get(0).([]domain.ReviewRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.ReviewLogStore.WithTx
func (m *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	if ret, ok := m.Called(tx).Get(0).(store.ReviewLogStore); ok {
		return ret
	}
	return m
}
