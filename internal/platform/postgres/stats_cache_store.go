package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresStatsCacheStore implements store.StatsCacheStore.
type PostgresStatsCacheStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsCacheStore creates a new PostgreSQL implementation of the StatsCacheStore interface.
func NewPostgresStatsCacheStore(db store.DBTX, logger *slog.Logger) *PostgresStatsCacheStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsCacheStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_cache_store")),
	}
}

var _ store.StatsCacheStore = (*PostgresStatsCacheStore)(nil)

// Get implements store.StatsCacheStore.
func (s *PostgresStatsCacheStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	key string,
) (*domain.StatsCacheEntry, error) {
	var (
		e    domain.StatsCacheEntry
		data []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, cache_key, data, computed_at, expires_at, version
		FROM stats_cache
		WHERE user_id = $1 AND cache_key = $2`, userID, key,
	).Scan(&e.UserID, &e.CacheKey, &data, &e.ComputedAt, &e.ExpiresAt, &e.Version)
	if err != nil {
		return nil, wrapError("stats_cache", "get", err, store.ErrCacheEntryNotFound)
	}
	e.Data = data
	return &e, nil
}

// Upsert implements store.StatsCacheStore.
func (s *PostgresStatsCacheStore) Upsert(ctx context.Context, e *domain.StatsCacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stats_cache (user_id, cache_key, data, computed_at, expires_at, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, cache_key) DO UPDATE SET
			data = EXCLUDED.data,
			computed_at = EXCLUDED.computed_at,
			expires_at = EXCLUDED.expires_at,
			version = EXCLUDED.version`,
		e.UserID, e.CacheKey, []byte(e.Data), e.ComputedAt, e.ExpiresAt, e.Version,
	)
	if err != nil {
		return wrapError("stats_cache", "upsert", err, nil)
	}
	return nil
}

// DeleteForUser implements store.StatsCacheStore.
func (s *PostgresStatsCacheStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.exec(ctx, "delete_for_user", `DELETE FROM stats_cache WHERE user_id = $1`, userID)
}

// DeleteExpired implements store.StatsCacheStore.
func (s *PostgresStatsCacheStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.exec(ctx, "delete_expired", `DELETE FROM stats_cache WHERE expires_at < $1`, cutoff)
}

func (s *PostgresStatsCacheStore) exec(ctx context.Context, operation, query string, args ...any) (int64, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapError("stats_cache", operation, err, nil)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapError("stats_cache", operation, err, nil)
	}
	return n, nil
}

// PostgresCacheMetricStore implements store.CacheMetricStore.
type PostgresCacheMetricStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCacheMetricStore creates a new PostgreSQL implementation of the CacheMetricStore interface.
func NewPostgresCacheMetricStore(db store.DBTX, logger *slog.Logger) *PostgresCacheMetricStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCacheMetricStore{
		db:     db,
		logger: logger.With(slog.String("component", "cache_metric_store")),
	}
}

var _ store.CacheMetricStore = (*PostgresCacheMetricStore)(nil)

// Create implements store.CacheMetricStore. The generated ID is written back to m.
func (s *PostgresCacheMetricStore) Create(ctx context.Context, m *domain.CacheMetric) error {
	var computation, ttl sql.NullInt64
	if m.ComputationTimeMs != nil {
		computation = sql.NullInt64{Int64: *m.ComputationTimeMs, Valid: true}
	}
	if m.TTLMs != nil {
		ttl = sql.NullInt64{Int64: *m.TTLMs, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO cache_metrics (ts, cache_key, user_id, hit_type, computation_time_ms, ttl_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.Timestamp, m.CacheKey, nullUUID(m.UserID), string(m.HitType), computation, ttl,
	).Scan(&m.ID)
	if err != nil {
		return wrapError("cache_metric", "create", err, nil)
	}
	return nil
}

// DeleteBefore implements store.CacheMetricStore.
func (s *PostgresCacheMetricStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cache_metrics WHERE ts < $1`, cutoff)
	if err != nil {
		return 0, wrapError("cache_metric", "delete_before", err, nil)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapError("cache_metric", "delete_before", err, nil)
	}
	return n, nil
}
