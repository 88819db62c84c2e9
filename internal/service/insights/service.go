// Package insights serves the read-side statistics of a user: retention,
// review summaries and study-time recommendations. Every result goes
// through the statistics cache.
package insights

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/queue"
	"github.com/phrazzld/scry-scheduler/internal/domain/recommend"
	"github.com/phrazzld/scry-scheduler/internal/domain/stats"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service"
	"github.com/phrazzld/scry-scheduler/internal/statscache"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// Upper bounds accepted for caller-supplied ranges.
const (
	MaxWindowDays = 365
	MaxDaysAhead  = 30
)

// InsightsService computes per-user statistics.
type InsightsService interface {
	// GetRetentionRate returns the success rate over the last windowDays.
	// A zero windowDays selects the configured window.
	GetRetentionRate(ctx context.Context, userID uuid.UUID, windowDays int) (domain.RetentionRate, error)

	// GetReviewSummary aggregates the reviews of the last windowDays.
	GetReviewSummary(ctx context.Context, userID uuid.UUID, windowDays int) (domain.ReviewSummary, error)

	// GetTodayStudyRecommendations advises whether to study now. An empty
	// timezone selects the default zone.
	GetTodayStudyRecommendations(ctx context.Context, userID uuid.UUID, timezone string) (domain.TodayRecommendation, error)

	// GetStudyRecommendations plans study slots for the next days.
	GetStudyRecommendations(ctx context.Context, userID uuid.UUID, days int, timezone string) (domain.StudyRecommendations, error)
}

// Settings holds the tunables of the service.
type Settings struct {
	RetentionWindowDays int
	RecommendationDays  int
	DailyNewCardCap     int
	RetentionTTL        time.Duration
	RecommendationTTL   time.Duration
	DefaultTimezone     *time.Location
}

func (s Settings) withDefaults() Settings {
	if s.RetentionWindowDays <= 0 {
		s.RetentionWindowDays = stats.DefaultWindowDays
	}
	if s.RecommendationDays <= 0 {
		s.RecommendationDays = recommend.DefaultDaysAhead
	}
	if s.DailyNewCardCap < 0 {
		s.DailyNewCardCap = queue.DefaultDailyNewCardCap
	}
	if s.RetentionTTL <= 0 {
		s.RetentionTTL = time.Hour
	}
	if s.RecommendationTTL <= 0 {
		s.RecommendationTTL = 15 * time.Minute
	}
	if s.DefaultTimezone == nil {
		s.DefaultTimezone = time.UTC
	}
	return s
}

// Option configures the service.
type Option func(*insightsServiceImpl)

// WithCache serves results through c.
func WithCache(c *statscache.Cache) Option {
	return func(s *insightsServiceImpl) { s.cache = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *insightsServiceImpl) { s.now = now }
}

type insightsServiceImpl struct {
	cards    store.CardStore
	reviews  store.ReviewLogStore
	patterns store.PatternStore
	settings Settings
	cache    *statscache.Cache
	now      func() time.Time
	logger   *slog.Logger
}

var _ InsightsService = (*insightsServiceImpl)(nil)

// NewInsightsService creates an InsightsService. Without WithCache every call
// computes directly.
func NewInsightsService(
	cards store.CardStore,
	reviews store.ReviewLogStore,
	patterns store.PatternStore,
	settings Settings,
	logger *slog.Logger,
	opts ...Option,
) InsightsService {
	if cards == nil {
		panic("cards cannot be nil")
	}
	if reviews == nil {
		panic("reviews cannot be nil")
	}
	if patterns == nil {
		panic("patterns cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &insightsServiceImpl{
		cards:    cards,
		reviews:  reviews,
		patterns: patterns,
		settings: settings.withDefaults(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("component", "insights_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newError(operation, message string, err error) error {
	return service.NewServiceError("insights", operation, message, err)
}

// GetRetentionRate implements InsightsService.
func (s *insightsServiceImpl) GetRetentionRate(
	ctx context.Context,
	userID uuid.UUID,
	windowDays int,
) (domain.RetentionRate, error) {
	windowDays, err := s.window(windowDays)
	if err != nil {
		return domain.RetentionRate{}, newError("get_retention_rate", "invalid window", err)
	}

	rate, err := statscache.Fetch(ctx, s.cache, userID, statscache.RetentionKey(windowDays), s.settings.RetentionTTL,
		func(ctx context.Context) (domain.RetentionRate, error) {
			now := s.now()
			reviews, err := s.reviewsSince(ctx, userID, windowDays, now)
			if err != nil {
				return domain.RetentionRate{}, err
			}
			return stats.RetentionRate(reviews, windowDays, now), nil
		})
	if err != nil {
		s.logFailure(ctx, userID, "failed to compute retention rate", err)
		return domain.RetentionRate{}, newError("get_retention_rate", "failed to compute retention rate", err)
	}
	return rate, nil
}

// GetReviewSummary implements InsightsService.
func (s *insightsServiceImpl) GetReviewSummary(
	ctx context.Context,
	userID uuid.UUID,
	windowDays int,
) (domain.ReviewSummary, error) {
	windowDays, err := s.window(windowDays)
	if err != nil {
		return domain.ReviewSummary{}, newError("get_review_summary", "invalid window", err)
	}

	summary, err := statscache.Fetch(ctx, s.cache, userID, statscache.SummaryKey(windowDays), s.settings.RetentionTTL,
		func(ctx context.Context) (domain.ReviewSummary, error) {
			now := s.now()
			reviews, err := s.reviewsSince(ctx, userID, windowDays, now)
			if err != nil {
				return domain.ReviewSummary{}, err
			}
			return stats.Summarize(reviews, windowDays, now), nil
		})
	if err != nil {
		s.logFailure(ctx, userID, "failed to summarize reviews", err)
		return domain.ReviewSummary{}, newError("get_review_summary", "failed to summarize reviews", err)
	}
	return summary, nil
}

// GetTodayStudyRecommendations implements InsightsService.
func (s *insightsServiceImpl) GetTodayStudyRecommendations(
	ctx context.Context,
	userID uuid.UUID,
	timezone string,
) (domain.TodayRecommendation, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return domain.TodayRecommendation{}, newError("get_today_recommendations", "invalid timezone", err)
	}
	local := s.now().In(loc)

	rec, err := statscache.Fetch(ctx, s.cache, userID, statscache.TodayKey(local), s.settings.RecommendationTTL,
		func(ctx context.Context) (domain.TodayRecommendation, error) {
			pattern, err := s.pattern(ctx, userID)
			if err != nil {
				return domain.TodayRecommendation{}, err
			}
			due, err := s.cards.ListDue(ctx, userID, nil, local.UTC())
			if err != nil {
				return domain.TodayRecommendation{}, err
			}
			fresh, err := s.cappedNew(ctx, userID)
			if err != nil {
				return domain.TodayRecommendation{}, err
			}
			return recommend.Today(pattern, len(due)+fresh, local), nil
		})
	if err != nil {
		s.logFailure(ctx, userID, "failed to build today's recommendation", err)
		return domain.TodayRecommendation{}, newError("get_today_recommendations", "failed to build recommendation", err)
	}
	return rec, nil
}

// GetStudyRecommendations implements InsightsService.
func (s *insightsServiceImpl) GetStudyRecommendations(
	ctx context.Context,
	userID uuid.UUID,
	days int,
	timezone string,
) (domain.StudyRecommendations, error) {
	if days == 0 {
		days = s.settings.RecommendationDays
	}
	if days < 0 || days > MaxDaysAhead {
		return domain.StudyRecommendations{}, newError("get_study_recommendations", "invalid day count",
			domain.InvalidArgument("days", "must be between 1 and 30"))
	}
	loc, err := s.location(timezone)
	if err != nil {
		return domain.StudyRecommendations{}, newError("get_study_recommendations", "invalid timezone", err)
	}
	local := s.now().In(loc)

	recs, err := statscache.Fetch(ctx, s.cache, userID, statscache.WeeklyKey(local, days), s.settings.RecommendationTTL,
		func(ctx context.Context) (domain.StudyRecommendations, error) {
			pattern, err := s.pattern(ctx, userID)
			if err != nil {
				return domain.StudyRecommendations{}, err
			}
			counts, err := s.dueCountsByDay(ctx, userID, local, days)
			if err != nil {
				return domain.StudyRecommendations{}, err
			}
			return recommend.Weekly(pattern, counts, local), nil
		})
	if err != nil {
		s.logFailure(ctx, userID, "failed to build study plan", err)
		return domain.StudyRecommendations{}, newError("get_study_recommendations", "failed to build recommendations", err)
	}
	return recs, nil
}

// dueCountsByDay buckets due dates into local calendar days starting at
// local's date. Overdue cards and the capped new cards count on day 0.
func (s *insightsServiceImpl) dueCountsByDay(
	ctx context.Context,
	userID uuid.UUID,
	local time.Time,
	days int,
) ([]int, error) {
	loc := local.Location()
	y, m, d := local.Date()
	day0 := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := day0.AddDate(0, 0, days)

	dates, err := s.cards.ListDueDatesUntil(ctx, userID, end.UTC())
	if err != nil {
		return nil, err
	}

	counts := make([]int, days)
	for _, due := range dates {
		idx := dayIndex(day0, due.In(loc))
		switch {
		case idx < 0:
			counts[0]++
		case idx < days:
			counts[idx]++
		}
	}

	fresh, err := s.cappedNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts[0] += fresh
	return counts, nil
}

// dayIndex is the number of local calendar days from day0 to t.
func dayIndex(day0, t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, day0.Location())
	return int(math.Round(day.Sub(day0).Hours() / 24))
}

func (s *insightsServiceImpl) cappedNew(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.cards.CountNew(ctx, userID)
	if err != nil {
		return 0, err
	}
	return min(n, s.settings.DailyNewCardCap), nil
}

// pattern returns nil when the user has no learning pattern yet.
func (s *insightsServiceImpl) pattern(ctx context.Context, userID uuid.UUID) (*domain.LearningPattern, error) {
	p, err := s.patterns.Get(ctx, userID)
	if errors.Is(err, store.ErrPatternNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *insightsServiceImpl) reviewsSince(
	ctx context.Context,
	userID uuid.UUID,
	windowDays int,
	now time.Time,
) ([]domain.ReviewRecord, error) {
	return s.reviews.ListSince(ctx, userID, now.AddDate(0, 0, -windowDays))
}

func (s *insightsServiceImpl) window(days int) (int, error) {
	if days == 0 {
		return s.settings.RetentionWindowDays, nil
	}
	if days < 0 || days > MaxWindowDays {
		return 0, domain.InvalidArgument("window_days", "must be between 1 and 365")
	}
	return days, nil
}

func (s *insightsServiceImpl) location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return s.settings.DefaultTimezone, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, domain.InvalidArgument("timezone", "is not a known IANA zone")
	}
	return loc, nil
}

func (s *insightsServiceImpl) logFailure(ctx context.Context, userID uuid.UUID, msg string, err error) {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()))
}
