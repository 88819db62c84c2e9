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

// MasteryStore is a testify mock of store.MasteryStore.
type MasteryStore struct {
	mock.Mock
}

var _ store.MasteryStore = (*MasteryStore)(nil)

// Get is a mock implementation of store.MasteryStore.Get
func (m *MasteryStore) Get(ctx context.Context, userID, conceptID uuid.UUID) (*domain.ConceptMastery, error) {
	args := m.Called(ctx, userID, conceptID)
	if cm, ok := args.Get(0).(*domain.ConceptMastery); ok {
		return cm, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.MasteryStore.Upsert
func (m *MasteryStore) Upsert(ctx context.Context, cm *domain.ConceptMastery) error {
	return m.Called(ctx, cm).Error(0)
}

// WithTx is a mock implementation of store.MasteryStore.WithTx
func (m *MasteryStore) WithTx(*sql.Tx) store.MasteryStore {
	return m
}

// PatternStore is a testify mock of store.PatternStore.
type PatternStore struct {
	mock.Mock
}

var _ store.PatternStore = (*PatternStore)(nil)

// Get is a mock implementation of store.PatternStore.Get
func (m *PatternStore) Get(ctx context.Context, userID uuid.UUID) (*domain.LearningPattern, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.LearningPattern); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.PatternStore.Upsert
func (m *PatternStore) Upsert(ctx context.Context, p *domain.LearningPattern) error {
	return m.Called(ctx, p).Error(0)
}

// WithTx is a mock implementation of store.PatternStore.WithTx
func (m *PatternStore) WithTx(*sql.Tx) store.PatternStore {
	return m
}

// StreakStore is a testify mock of store.StreakStore.
type StreakStore struct {
	mock.Mock
}

var _ store.StreakStore = (*StreakStore)(nil)

// Get is a mock implementation of store.StreakStore.Get
func (m *StreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	return streak(m.Called(ctx, userID))
}

// GetForUpdate is a mock implementation of store.StreakStore.GetForUpdate
func (m *StreakStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	return streak(m.Called(ctx, userID))
}

// CreateIfAbsent is a mock implementation of store.StreakStore.CreateIfAbsent
func (m *StreakStore) CreateIfAbsent(ctx context.Context, s *domain.StudyStreak) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

// Upsert is a mock implementation of store.StreakStore.Upsert
func (m *StreakStore) Upsert(ctx context.Context, s *domain.StudyStreak) error {
	return m.Called(ctx, s).Error(0)
}

// WithTx is a mock implementation of store.StreakStore.WithTx
func (m *StreakStore) WithTx(*sql.Tx) store.StreakStore {
	return m
}

func streak(args mock.Arguments) (*domain.StudyStreak, error) {
	if s, ok := args.Get(0).(*domain.StudyStreak); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// StatsCacheStore is a testify mock of store.StatsCacheStore.
type StatsCacheStore struct {
	mock.Mock
}

var _ store.StatsCacheStore = (*StatsCacheStore)(nil)

// Get is a mock implementation of store.StatsCacheStore.Get
func (m *StatsCacheStore) Get(ctx context.Context, userID uuid.UUID, key string) (*domain.StatsCacheEntry, error) {
	args := m.Called(ctx, userID, key)
	if e, ok := args.Get(0).(*domain.StatsCacheEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.StatsCacheStore.Upsert
func (m *StatsCacheStore) Upsert(ctx context.Context, e *domain.StatsCacheEntry) error {
	return m.Called(ctx, e).Error(0)
}

// DeleteForUser is a mock implementation of store.StatsCacheStore.DeleteForUser
func (m *StatsCacheStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteExpired is a mock implementation of store.StatsCacheStore.DeleteExpired
func (m *StatsCacheStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// CacheMetricStore is a testify mock of store.CacheMetricStore.
type CacheMetricStore struct {
	mock.Mock
}

var _ store.CacheMetricStore = (*CacheMetricStore)(nil)

// Create is a mock implementation of store.CacheMetricStore.Create
func (m *CacheMetricStore) Create(ctx context.Context, metric *domain.CacheMetric) error {
	return m.Called(ctx, metric).Error(0)
}

// DeleteBefore is a mock implementation of store.CacheMetricStore.DeleteBefore
func (m *CacheMetricStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
