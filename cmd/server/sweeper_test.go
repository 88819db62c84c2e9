package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/mocks"
	"github.com/phrazzld/scry-scheduler/internal/statscache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweeper(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cfg := config.CacheConfig{SweepInterval: time.Minute, MetricsRetention: 24 * time.Hour}

	setup := func(t *testing.T) (*sweeper, *mocks.StatsCacheStore, *mocks.CacheMetricStore) {
		t.Helper()
		entries := &mocks.StatsCacheStore{}
		metricLog := &mocks.CacheMetricStore{}
		cache := statscache.New(entries, 1, discardLogger(), statscache.WithClock(func() time.Time { return now }))

		s, err := newSweeper(cache, metricLog, cfg, discardLogger())
		require.NoError(t, err)
		s.now = func() time.Time { return now }
		return s, entries, metricLog
	}

	t.Run("purges expired entries and old metrics", func(t *testing.T) {
		s, entries, metricLog := setup(t)
		entries.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil)
		metricLog.On("DeleteBefore", mock.Anything, now.Add(-24*time.Hour)).Return(int64(10), nil)

		s.sweep(context.Background())

		entries.AssertExpectations(t)
		metricLog.AssertExpectations(t)
	})

	t.Run("continues after purge failure", func(t *testing.T) {
		s, entries, metricLog := setup(t)
		entries.On("DeleteExpired", mock.Anything, now).Return(int64(0), errors.New("database down"))
		metricLog.On("DeleteBefore", mock.Anything, now.Add(-24*time.Hour)).Return(int64(0), nil)

		s.sweep(context.Background())

		metricLog.AssertExpectations(t)
	})

	t.Run("nil cache only prunes metrics", func(t *testing.T) {
		metricLog := &mocks.CacheMetricStore{}
		metricLog.On("DeleteBefore", mock.Anything, now.Add(-24*time.Hour)).Return(int64(0), nil)

		s, err := newSweeper(nil, metricLog, cfg, discardLogger())
		require.NoError(t, err)
		s.now = func() time.Time { return now }

		assert.NotPanics(t, func() { s.sweep(context.Background()) })
		metricLog.AssertExpectations(t)
	})

	t.Run("start and stop", func(t *testing.T) {
		s, _, _ := setup(t)
		s.Start()
		s.Stop()
	})
}
