package card_review

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/statscache"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// ReviewRecorder is notified of every committed review.
type ReviewRecorder interface {
	ReviewRecorded(strategy string, successful bool)
}

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	db         store.TxBeginner
	cards      store.CardStore
	schedules  store.ScheduleStore
	reviews    store.ReviewLogStore
	mastery    store.MasteryStore
	patterns   store.PatternStore
	srsService srs.Service

	cache     *statscache.Cache
	emitter   events.EventEmitter
	recorder  ReviewRecorder
	defaultTZ *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures optional collaborators of the service.
type Option func(*cardReviewServiceImpl)

// WithCache invalidates the reviewer's cached statistics after each review.
func WithCache(c *statscache.Cache) Option {
	return func(s *cardReviewServiceImpl) { s.cache = c }
}

// WithEmitter publishes a review.recorded event after each review.
func WithEmitter(e events.EventEmitter) Option {
	return func(s *cardReviewServiceImpl) {
		if e != nil {
			s.emitter = e
		}
	}
}

// WithRecorder reports committed reviews, typically to metrics.
func WithRecorder(r ReviewRecorder) Option {
	return func(s *cardReviewServiceImpl) { s.recorder = r }
}

// WithDefaultTimezone sets the zone used when a request names none.
func WithDefaultTimezone(loc *time.Location) Option {
	return func(s *cardReviewServiceImpl) {
		if loc != nil {
			s.defaultTZ = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *cardReviewServiceImpl) { s.now = now }
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	db store.TxBeginner,
	cards store.CardStore,
	schedules store.ScheduleStore,
	reviews store.ReviewLogStore,
	mastery store.MasteryStore,
	patterns store.PatternStore,
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	switch {
	case db == nil:
		panic("db cannot be nil")
	case cards == nil:
		panic("cards cannot be nil")
	case schedules == nil:
		panic("schedules cannot be nil")
	case reviews == nil:
		panic("reviews cannot be nil")
	case mastery == nil:
		panic("mastery cannot be nil")
	case patterns == nil:
		panic("patterns cannot be nil")
	case srsService == nil:
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		db:         db,
		cards:      cards,
		schedules:  schedules,
		reviews:    reviews,
		mastery:    mastery,
		patterns:   patterns,
		srsService: srsService,
		emitter:    events.NopEmitter{},
		defaultTZ:  time.UTC,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReviewCard implements CardReviewService.ReviewCard.
func (s *cardReviewServiceImpl) ReviewCard(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	req ReviewRequest,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))

	loc, err := s.validateReview(req)
	if err != nil {
		log.Warn("invalid review request", slog.String("error", err.Error()))
		return nil, newError("review_card", "invalid review request", err)
	}

	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, newError("review_card", "failed to load card", err)
	}

	// Personalization inputs are read outside the transaction so a failed
	// lookup cannot abort it.
	personalization := s.resolvePersonalization(ctx, log, card)

	now := s.now()
	var result *ReviewResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		schedules := s.schedules.WithTx(tx)

		current, err := lockSchedule(ctx, schedules, userID, cardID, now)
		if err != nil {
			return err
		}

		next, err := s.srsService.ReviewWithPersonalization(current, req.Quality, personalization, now)
		if err != nil {
			return err
		}

		if err := schedules.Upsert(ctx, next.Schedule); err != nil {
			return err
		}

		record := domain.NewReviewRecord(current, next.Schedule, req.Quality, req.StudyMode, now, now.In(loc).Hour())
		record.ResponseTimeMs = req.ResponseTimeMs
		record.ConfidenceRating = req.ConfidenceRating
		if err := s.reviews.WithTx(tx).Create(ctx, record); err != nil {
			return err
		}

		result = &ReviewResult{Schedule: next.Schedule, Review: record, Strategy: next.Strategy}
		return nil
	})
	if err != nil {
		log.Error("failed to record review", slog.String("error", err.Error()))
		return nil, newError("review_card", "failed to record review", err)
	}

	s.afterCommit(ctx, log, userID, result)

	log.Debug("review recorded",
		slog.Int("quality", req.Quality),
		slog.String("strategy", string(result.Strategy)),
		slog.Float64("ease_factor", result.Schedule.EaseFactor),
		slog.Int("interval", result.Schedule.Interval))
	return result, nil
}

// InitializeCard implements CardReviewService.InitializeCard.
func (s *cardReviewServiceImpl) InitializeCard(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
) (*domain.CardSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedCard(ctx, userID, cardID); err != nil {
		return nil, newError("initialize_card", "failed to load card", err)
	}

	initial, err := domain.NewCardSchedule(userID, cardID, s.now())
	if err != nil {
		return nil, newError("initialize_card", "failed to build schedule", err)
	}

	created, err := s.schedules.CreateIfAbsent(ctx, initial)
	if err != nil {
		return nil, newError("initialize_card", "failed to save schedule", err)
	}
	if created {
		log.Debug("card initialized",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return initial, nil
	}

	existing, err := s.schedules.Get(ctx, userID, cardID)
	if err != nil {
		return nil, newError("initialize_card", "failed to load schedule", err)
	}
	return existing, nil
}

func (s *cardReviewServiceImpl) validateReview(req ReviewRequest) (*time.Location, error) {
	if req.Quality < domain.MinQuality || req.Quality > domain.MaxQuality {
		return nil, domain.InvalidArgument("quality", "must be between 0 and 5")
	}
	if req.ResponseTimeMs != nil && *req.ResponseTimeMs < 0 {
		return nil, domain.InvalidArgument("response_time_ms", "cannot be negative")
	}
	if req.ConfidenceRating != nil && (*req.ConfidenceRating < 1 || *req.ConfidenceRating > 5) {
		return nil, domain.InvalidArgument("confidence_rating", "must be between 1 and 5")
	}
	if req.Timezone == "" {
		return s.defaultTZ, nil
	}
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, domain.InvalidArgument("timezone", "is not a known IANA zone")
	}
	return loc, nil
}

// ownedCard loads a card and hides cards of other users behind NotFound.
func (s *cardReviewServiceImpl) ownedCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		logger.FromContextOrDefault(ctx, s.logger).Warn("card requested by non-owner",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

// resolvePersonalization never fails: lookup errors fall back to the next
// strategy and are logged.
func (s *cardReviewServiceImpl) resolvePersonalization(
	ctx context.Context,
	log *slog.Logger,
	card *domain.Card,
) srs.Personalization {
	var mastery *domain.ConceptMastery
	if card.ConceptID != nil {
		m, err := s.mastery.Get(ctx, card.UserID, *card.ConceptID)
		switch {
		case err == nil:
			mastery = m
		case !errors.Is(err, store.ErrMasteryNotFound):
			log.Warn("mastery lookup failed, continuing without it", slog.String("error", err.Error()))
		}
	}
	if mastery != nil {
		return srs.ResolvePersonalization(mastery, nil)
	}

	p, err := s.patterns.Get(ctx, card.UserID)
	switch {
	case err == nil:
		return srs.ResolvePersonalization(nil, p)
	case !errors.Is(err, store.ErrPatternNotFound):
		log.Warn("learning pattern lookup failed, continuing without it", slog.String("error", err.Error()))
	}
	return srs.NoPersonalization()
}

// lockSchedule returns the locked schedule row, inserting the default state
// first when the card was never initialized.
func lockSchedule(
	ctx context.Context,
	schedules store.ScheduleStore,
	userID, cardID uuid.UUID,
	now time.Time,
) (*domain.CardSchedule, error) {
	current, err := schedules.GetForUpdate(ctx, userID, cardID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, store.ErrScheduleNotFound) {
		return nil, err
	}

	initial, err := domain.NewCardSchedule(userID, cardID, now)
	if err != nil {
		return nil, err
	}
	if _, err := schedules.CreateIfAbsent(ctx, initial); err != nil {
		return nil, err
	}
	return schedules.GetForUpdate(ctx, userID, cardID)
}

// afterCommit runs the best-effort side effects of a review.
func (s *cardReviewServiceImpl) afterCommit(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	result *ReviewResult,
) {
	if s.recorder != nil {
		s.recorder.ReviewRecorded(string(result.Strategy), result.Review.WasSuccessful)
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Warn("failed to invalidate cached statistics", slog.String("error", err.Error()))
	}

	event, err := events.NewEvent(events.TypeReviewRecorded, userID, events.ReviewRecordedPayload{
		ReviewID:      result.Review.ID,
		CardID:        result.Review.CardID,
		Quality:       result.Review.Quality,
		WasSuccessful: result.Review.WasSuccessful,
		Strategy:      string(result.Strategy),
		Interval:      result.Schedule.Interval,
		EaseFactor:    result.Schedule.EaseFactor,
		DueDate:       result.Review.DueDateAfter,
		ReviewedAt:    result.Review.ReviewedAt,
	}, s.now())
	if err != nil {
		log.Warn("failed to build review event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit review event", slog.String("error", err.Error()))
	}
}
