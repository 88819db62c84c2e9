package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// Cache reads and writes memoized statistics. A nil *Cache is valid and
// computes every value directly.
type Cache struct {
	store    store.StatsCacheStore
	observer Observer
	version  int
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithObserver sets the metric observer.
func WithObserver(o Observer) Option {
	return func(c *Cache) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a Cache over s. version is the schema version of the cached
// payloads; entries written under another version are never served.
func New(s store.StatsCacheStore, version int, logger *slog.Logger, opts ...Option) *Cache {
	if s == nil {
		panic("stats cache store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cache{
		store:    s,
		observer: NopObserver{},
		version:  version,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("component", "stats_cache")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value under key or computes, stores and returns
// it. Cache failures never fail the call; compute errors are returned as is
// and nothing is stored. Every call that reaches compute records the lookup
// outcome, whether or not compute succeeds.
func Fetch[T any](
	ctx context.Context,
	c *Cache,
	userID uuid.UUID,
	key string,
	ttl time.Duration,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return compute(ctx)
	}

	now := c.now()
	log := c.logger.With(slog.String("cache_key", key), slog.String("user_id", userID.String()))

	hitType := domain.CacheMiss
	entry, err := c.store.Get(ctx, userID, key)
	switch {
	case err == nil && entry.IsFresh(now, c.version):
		var cached T
		uerr := json.Unmarshal(entry.Data, &cached)
		if uerr == nil {
			c.observe(ctx, userID, key, domain.CacheHit, nil, entry.ExpiresAt.Sub(now))
			return cached, nil
		}
		log.WarnContext(ctx, "discarding undecodable cache entry", slog.Any("error", uerr))
		hitType = domain.CacheExpired
	case err == nil:
		hitType = domain.CacheExpired
	case errors.Is(err, store.ErrCacheEntryNotFound):
	default:
		log.WarnContext(ctx, "cache read failed, computing directly", slog.Any("error", err))
	}

	started := time.Now()
	value, err := compute(ctx)
	elapsed := time.Since(started)
	if err != nil {
		c.observe(ctx, userID, key, hitType, &elapsed, ttl)
		var zero T
		return zero, err
	}

	c.put(ctx, log, userID, key, value, now, ttl)
	c.observe(ctx, userID, key, hitType, &elapsed, ttl)
	return value, nil
}

func (c *Cache) put(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	key string,
	value any,
	now time.Time,
	ttl time.Duration,
) {
	data, err := json.Marshal(value)
	if err != nil {
		log.WarnContext(ctx, "failed to encode cache entry", slog.Any("error", err))
		return
	}

	entry := &domain.StatsCacheEntry{
		UserID:     userID,
		CacheKey:   key,
		Data:       data,
		ComputedAt: now,
		ExpiresAt:  now.Add(ttl),
		Version:    c.version,
	}
	if err := c.store.Upsert(ctx, entry); err != nil {
		log.WarnContext(ctx, "cache write failed", slog.Any("error", err))
	}
}

func (c *Cache) observe(
	ctx context.Context,
	userID uuid.UUID,
	key string,
	hitType domain.HitType,
	computation *time.Duration,
	ttl time.Duration,
) {
	id := userID
	ttlMs := ttl.Milliseconds()
	m := domain.CacheMetric{
		Timestamp: c.now(),
		CacheKey:  key,
		UserID:    &id,
		HitType:   hitType,
		TTLMs:     &ttlMs,
	}
	if computation != nil {
		ms := computation.Milliseconds()
		m.ComputationTimeMs = &ms
	}
	c.observer.Observe(ctx, m)
}

// Invalidate drops every cached entry of the user.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil {
		return nil
	}
	n, err := c.store.DeleteForUser(ctx, userID)
	if err != nil {
		return err
	}
	c.logger.DebugContext(ctx, "invalidated cached statistics",
		slog.String("user_id", userID.String()),
		slog.Int64("entries", n))
	return nil
}

// PurgeExpired deletes entries that are already expired.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	return c.store.DeleteExpired(ctx, c.now())
}
