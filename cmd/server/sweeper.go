package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/redact"
	"github.com/phrazzld/scry-scheduler/internal/statscache"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

const sweepTimeout = 30 * time.Second

// sweeper periodically drops expired cache entries and old cache metrics.
type sweeper struct {
	scheduler *gocron.Scheduler
	cache     *statscache.Cache
	metrics   store.CacheMetricStore
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func newSweeper(
	cache *statscache.Cache,
	metrics store.CacheMetricStore,
	cfg config.CacheConfig,
	logger *slog.Logger,
) (*sweeper, error) {
	s := &sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     cache,
		metrics:   metrics,
		retention: cfg.MetricsRetention,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With(slog.String("component", "cache_sweeper")),
	}
	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(cfg.SweepInterval).WaitForSchedule().Do(s.run); err != nil {
		return nil, fmt.Errorf("failed to schedule cache sweep: %w", err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *sweeper) Start() {
	s.scheduler.StartAsync()
}

// Stop waits for a running sweep and halts the schedule.
func (s *sweeper) Stop() {
	s.scheduler.Stop()
}

func (s *sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.sweep(ctx)
}

// sweep performs one pass. Failures are logged; the next tick retries.
func (s *sweeper) sweep(ctx context.Context) {
	entries, err := s.cache.PurgeExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to purge expired cache entries", redact.Attr(err))
	}

	var metrics int64
	if s.metrics != nil && s.retention > 0 {
		metrics, err = s.metrics.DeleteBefore(ctx, s.now().Add(-s.retention))
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to prune cache metrics", redact.Attr(err))
		}
	}

	s.logger.DebugContext(ctx, "cache sweep finished",
		slog.Int64("expired_entries", entries),
		slog.Int64("pruned_metrics", metrics))
}
