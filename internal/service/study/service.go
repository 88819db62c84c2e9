// Package study builds study queues and per-deck review information.
package study

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/queue"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// StudyService answers what a user should study next.
type StudyService interface {
	// GetStudyQueue returns every due card followed by up to the daily cap
	// of new cards. A nil deckID spans all of the user's decks.
	GetStudyQueue(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID, shuffle bool) ([]domain.StudyCard, error)

	// GetNextReviewInfo summarizes a deck. A deck of another user is NotFound.
	GetNextReviewInfo(ctx context.Context, userID, deckID uuid.UUID) (*domain.NextReviewInfo, error)
}

// Option configures the service.
type Option func(*studyServiceImpl)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *studyServiceImpl) { s.now = now }
}

// WithRand sets the source used to shuffle queues.
func WithRand(r *rand.Rand) Option {
	return func(s *studyServiceImpl) {
		if r != nil {
			s.rand = r
		}
	}
}

type studyServiceImpl struct {
	cards      store.CardStore
	newCardCap int
	now        func() time.Time
	logger     *slog.Logger
	randMu     sync.Mutex
	rand       *rand.Rand
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates a StudyService. newCardCap bounds the new cards of
// one queue; zero or less selects queue.DefaultDailyNewCardCap.
func NewStudyService(cards store.CardStore, newCardCap int, logger *slog.Logger, opts ...Option) StudyService {
	if cards == nil {
		panic("cards cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if newCardCap <= 0 {
		newCardCap = queue.DefaultDailyNewCardCap
	}

	s := &studyServiceImpl{
		cards:      cards,
		newCardCap: newCardCap,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "study_service")),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newError(operation, message string, err error) error {
	return service.NewServiceError("study", operation, message, err)
}

// GetStudyQueue implements StudyService.
func (s *studyServiceImpl) GetStudyQueue(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	shuffle bool,
) ([]domain.StudyCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if deckID != nil {
		if err := s.checkDeck(ctx, userID, *deckID); err != nil {
			return nil, newError("get_study_queue", "failed to load deck", err)
		}
	}

	now := s.now()
	due, err := s.cards.ListDue(ctx, userID, deckID, now)
	if err != nil {
		return nil, newError("get_study_queue", "failed to list due cards", err)
	}
	fresh, err := s.cards.ListNew(ctx, userID, deckID, s.newCardCap)
	if err != nil {
		return nil, newError("get_study_queue", "failed to list new cards", err)
	}

	candidates := make([]domain.StudyCard, 0, len(due)+len(fresh))
	candidates = append(candidates, due...)
	candidates = append(candidates, fresh...)

	s.randMu.Lock()
	cards := queue.Build(candidates, queue.Options{
		Now:             now,
		DailyNewCardCap: s.newCardCap,
		Shuffle:         shuffle,
		Rand:            s.rand,
	})
	s.randMu.Unlock()

	log.Debug("study queue built",
		slog.String("user_id", userID.String()),
		slog.Int("due", len(due)),
		slog.Int("new", len(cards)-len(due)),
		slog.Bool("shuffled", shuffle))
	return cards, nil
}

// GetNextReviewInfo implements StudyService.
func (s *studyServiceImpl) GetNextReviewInfo(
	ctx context.Context,
	userID uuid.UUID,
	deckID uuid.UUID,
) (*domain.NextReviewInfo, error) {
	if err := s.checkDeck(ctx, userID, deckID); err != nil {
		return nil, newError("get_next_review_info", "failed to load deck", err)
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, newError("get_next_review_info", "failed to list deck cards", err)
	}

	info := queue.NextReview(deckID, cards, s.now())
	return &info, nil
}

// checkDeck hides decks of other users behind NotFound.
func (s *studyServiceImpl) checkDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	deck, err := s.cards.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if deck.UserID != userID {
		return store.ErrDeckNotFound
	}
	return nil
}
