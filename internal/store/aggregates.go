package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// MasteryStore reads concept mastery profiles. Profiles are written by an
// external analytics job; Upsert exists for that job and for tests.
type MasteryStore interface {
	// Get returns ErrMasteryNotFound when no profile exists.
	Get(ctx context.Context, userID, conceptID uuid.UUID) (*domain.ConceptMastery, error)
	Upsert(ctx context.Context, m *domain.ConceptMastery) error
	WithTx(tx *sql.Tx) MasteryStore
}

// PatternStore reads per-user learning patterns.
type PatternStore interface {
	// Get returns ErrPatternNotFound when no pattern exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.LearningPattern, error)
	Upsert(ctx context.Context, p *domain.LearningPattern) error
	WithTx(tx *sql.Tx) PatternStore
}

// StreakStore persists study streaks.
type StreakStore interface {
	// Get returns ErrStreakNotFound when the user never studied.
	Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error)

	// GetForUpdate locks the streak row with SELECT FOR UPDATE.
	// Must run inside a transaction.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error)

	// CreateIfAbsent inserts s unless the user already has a streak row.
	CreateIfAbsent(ctx context.Context, s *domain.StudyStreak) (bool, error)

	Upsert(ctx context.Context, s *domain.StudyStreak) error
	WithTx(tx *sql.Tx) StreakStore
}

// StatsCacheStore persists cached aggregate computations.
type StatsCacheStore interface {
	// Get returns ErrCacheEntryNotFound when no entry exists, fresh or not.
	Get(ctx context.Context, userID uuid.UUID, key string) (*domain.StatsCacheEntry, error)
	Upsert(ctx context.Context, e *domain.StatsCacheEntry) error

	// DeleteForUser drops every entry of the user.
	DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteExpired drops entries that expired before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// CacheMetricStore is the append-only cache metric log.
type CacheMetricStore interface {
	Create(ctx context.Context, m *domain.CacheMetric) error

	// DeleteBefore prunes metrics older than cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
