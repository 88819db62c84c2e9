package statscache

import (
	"context"
	"log/slog"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// Observer receives one metric per cache lookup. Implementations must not
// block and must not fail the lookup.
type Observer interface {
	Observe(ctx context.Context, m domain.CacheMetric)
}

// NopObserver discards metrics.
type NopObserver struct{}

// Observe implements Observer.
func (NopObserver) Observe(context.Context, domain.CacheMetric) {}

// MultiObserver fans a metric out to every observer in order.
type MultiObserver []Observer

// Observe implements Observer.
func (m MultiObserver) Observe(ctx context.Context, metric domain.CacheMetric) {
	for _, o := range m {
		if o != nil {
			o.Observe(ctx, metric)
		}
	}
}

// StoreObserver appends metrics to the cache_metrics log.
type StoreObserver struct {
	store  store.CacheMetricStore
	logger *slog.Logger
}

// NewStoreObserver creates an observer persisting to s.
func NewStoreObserver(s store.CacheMetricStore, logger *slog.Logger) *StoreObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreObserver{
		store:  s,
		logger: logger.With(slog.String("component", "cache_metric_observer")),
	}
}

// Observe implements Observer. Write failures are logged and dropped.
func (o *StoreObserver) Observe(ctx context.Context, m domain.CacheMetric) {
	if err := o.store.Create(ctx, &m); err != nil {
		o.logger.WarnContext(ctx, "failed to record cache metric",
			slog.String("cache_key", m.CacheKey),
			slog.String("hit_type", string(m.HitType)),
			slog.Any("error", err))
	}
}
