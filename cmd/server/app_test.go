package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "debug",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{URL: "postgres://localhost/scry", MaxOpenConns: 1},
		Scheduling: config.SchedulingConfig{
			DailyNewCardCap:     20,
			DefaultTimezone:     "America/New_York",
			StreakMilestones:    []int{7, 30},
			RetentionWindowDays: 30,
			RecommendationDays:  7,
		},
		Cache: config.CacheConfig{
			Enabled:           true,
			SchemaVersion:     1,
			RetentionTTL:      time.Hour,
			RecommendationTTL: 15 * time.Minute,
			SweepInterval:     time.Minute,
			MetricsRetention:  24 * time.Hour,
			PersistMetrics:    true,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApplication(t *testing.T, cfg *config.Config) (*application, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(cfg, discardLogger(), db)
	require.NoError(t, err)
	return app, mock
}

func TestNewApplication(t *testing.T) {
	t.Run("wires cache when enabled", func(t *testing.T) {
		app, _ := newTestApplication(t, testConfig())

		assert.NotNil(t, app.cache)
		assert.NotNil(t, app.handlers.Review)
		assert.NotNil(t, app.handlers.Study)
		assert.NotNil(t, app.handlers.Streak)
		assert.NotNil(t, app.handlers.Insights)
		assert.Nil(t, app.publisher)
	})

	t.Run("skips cache when disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Enabled = false

		app, _ := newTestApplication(t, cfg)

		assert.Nil(t, app.cache)
	})

	t.Run("creates publisher when events enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Events = config.EventsConfig{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "scry.test"}

		app, _ := newTestApplication(t, cfg)

		assert.NotNil(t, app.publisher)
		app.cleanup()
	})

	t.Run("rejects unknown default timezone", func(t *testing.T) {
		cfg := testConfig()
		cfg.Scheduling.DefaultTimezone = "Mars/Olympus"
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		app, err := newApplication(cfg, discardLogger(), db)

		assert.Error(t, err)
		assert.Nil(t, app)
	})
}

func TestRouter(t *testing.T) {
	t.Run("health reports ok when database answers", func(t *testing.T) {
		app, mock := newTestApplication(t, testConfig())
		mock.ExpectPing()

		rec := httptest.NewRecorder()
		app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("health reports unavailable when ping fails", func(t *testing.T) {
		app, mock := newTestApplication(t, testConfig())
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("api requests are labelled by route pattern", func(t *testing.T) {
		app, _ := newTestApplication(t, testConfig())
		router := app.setupRouter()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid/streak", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Content-Type"))

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(),
			`http_requests_total{route="/api/users/{userID}/streak",status="400"} 1`)
	})

	t.Run("unknown route returns not found", func(t *testing.T) {
		app, _ := newTestApplication(t, testConfig())

		rec := httptest.NewRecorder()
		app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type stubHandler struct {
	err error
}

func (s stubHandler) HandleEvent(context.Context, *events.Event) error {
	return s.err
}

func TestFailureCountingHandler(t *testing.T) {
	m := metrics.New()
	h := failureCountingHandler{next: stubHandler{err: errors.New("broker down")}, metrics: m}

	err := h.HandleEvent(context.Background(), &events.Event{})
	assert.Error(t, err)

	ok := failureCountingHandler{next: stubHandler{}, metrics: m}
	assert.NoError(t, ok.HandleEvent(context.Background(), &events.Event{}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "event_publish_failures_total 1")
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	app, _ := newTestApplication(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, http.NotFoundHandler()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
