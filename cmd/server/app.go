package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/api"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/metrics"
	"github.com/phrazzld/scry-scheduler/internal/platform/postgres"
	"github.com/phrazzld/scry-scheduler/internal/redact"
	"github.com/phrazzld/scry-scheduler/internal/service/card_review"
	"github.com/phrazzld/scry-scheduler/internal/service/insights"
	"github.com/phrazzld/scry-scheduler/internal/service/streak"
	"github.com/phrazzld/scry-scheduler/internal/service/study"
	"github.com/phrazzld/scry-scheduler/internal/statscache"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	metrics   *metrics.Metrics
	handlers  api.Handlers
	cache     *statscache.Cache
	metricLog store.CacheMetricStore
	publisher *events.KafkaPublisher
}

// newApplication builds stores, services and handlers from cfg.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	defaultTZ, err := time.LoadLocation(cfg.Scheduling.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone: %w", err)
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	cards := postgres.NewPostgresCardStore(db, logger)
	schedules := postgres.NewPostgresScheduleStore(db, logger)
	reviews := postgres.NewPostgresReviewLogStore(db, logger)
	mastery := postgres.NewPostgresMasteryStore(db, logger)
	patterns := postgres.NewPostgresPatternStore(db, logger)
	streaks := postgres.NewPostgresStreakStore(db, logger)
	app.metricLog = postgres.NewPostgresCacheMetricStore(db, logger)

	if cfg.Cache.Enabled {
		observers := statscache.MultiObserver{app.metrics}
		if cfg.Cache.PersistMetrics {
			observers = append(observers, statscache.NewStoreObserver(app.metricLog, logger))
		}
		app.cache = statscache.New(
			postgres.NewPostgresStatsCacheStore(db, logger),
			cfg.Cache.SchemaVersion,
			logger,
			statscache.WithObserver(observers),
		)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	if cfg.Events.Enabled {
		app.publisher = events.NewKafkaPublisher(
			events.NewKafkaWriter(cfg.Events.Brokers, cfg.Events.Topic), 0, logger)
		emitter.RegisterHandler(failureCountingHandler{next: app.publisher, metrics: app.metrics})
	}

	reviewService := card_review.NewCardReviewService(
		db, cards, schedules, reviews, mastery, patterns, srs.NewDefaultService(), logger,
		card_review.WithCache(app.cache),
		card_review.WithEmitter(emitter),
		card_review.WithRecorder(app.metrics),
		card_review.WithDefaultTimezone(defaultTZ),
	)
	studyService := study.NewStudyService(cards, cfg.Scheduling.DailyNewCardCap, logger)
	streakService := streak.NewStreakService(db, streaks, cfg.Scheduling.StreakMilestones, defaultTZ, logger,
		streak.WithEmitter(emitter))
	insightsService := insights.NewInsightsService(cards, reviews, patterns, insights.Settings{
		RetentionWindowDays: cfg.Scheduling.RetentionWindowDays,
		RecommendationDays:  cfg.Scheduling.RecommendationDays,
		DailyNewCardCap:     cfg.Scheduling.DailyNewCardCap,
		RetentionTTL:        cfg.Cache.RetentionTTL,
		RecommendationTTL:   cfg.Cache.RecommendationTTL,
		DefaultTimezone:     defaultTZ,
	}, logger, insights.WithCache(app.cache))

	app.handlers = api.Handlers{
		Review:   api.NewReviewHandler(reviewService, logger),
		Study:    api.NewStudyHandler(studyService, logger),
		Streak:   api.NewStreakHandler(streakService, logger),
		Insights: api.NewInsightsHandler(insightsService, logger),
	}
	return app, nil
}

// run serves HTTP and the cache sweeper until ctx is canceled.
func (app *application) run(ctx context.Context) error {
	defer app.cleanup()

	if app.cache != nil {
		sweeper, err := newSweeper(app.cache, app.metricLog, app.config.Cache, app.logger)
		if err != nil {
			return err
		}
		sweeper.Start()
		defer sweeper.Stop()
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

func (app *application) cleanup() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("failed to close event publisher", redact.Attr(err))
		}
	}
}

// failureCountingHandler counts events the wrapped handler failed to deliver.
type failureCountingHandler struct {
	next    events.EventHandler
	metrics *metrics.Metrics
}

func (h failureCountingHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	err := h.next.HandleEvent(ctx, event)
	if err != nil {
		h.metrics.EventPublishFailed()
	}
	return err
}
