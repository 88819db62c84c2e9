// Package streak records study days and maintains daily streaks.
package streak

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	domainstreak "github.com/phrazzld/scry-scheduler/internal/domain/streak"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// StreakService tracks consecutive study days per user.
type StreakService interface {
	// UpdateStreak records a study session at studyDate. The calendar day is
	// taken in timezone, or in the user's stored zone when timezone is empty.
	// Repeat sessions on the same day and out-of-order dates change nothing.
	UpdateStreak(ctx context.Context, userID uuid.UUID, studyDate time.Time, timezone string) (*domain.StreakUpdate, error)

	// UpdateStreakForDate is UpdateStreak for a calendar date that is already
	// local to the user's timezone. Only its year, month and day are used.
	UpdateStreakForDate(ctx context.Context, userID uuid.UUID, date time.Time, timezone string) (*domain.StreakUpdate, error)

	// GetStreak returns the user's streak; a user who never studied has an
	// empty streak rather than a NotFound error.
	GetStreak(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error)
}

// Option configures the service.
type Option func(*streakServiceImpl)

// WithEmitter publishes a streak.updated event after each change.
func WithEmitter(e events.EventEmitter) Option {
	return func(s *streakServiceImpl) {
		if e != nil {
			s.emitter = e
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *streakServiceImpl) { s.now = now }
}

type streakServiceImpl struct {
	db         store.TxBeginner
	streaks    store.StreakStore
	milestones []int
	defaultTZ  *time.Location
	emitter    events.EventEmitter
	now        func() time.Time
	logger     *slog.Logger
}

var _ StreakService = (*streakServiceImpl)(nil)

// NewStreakService creates a StreakService. An empty milestones list selects
// the default milestones; a nil defaultTZ selects UTC.
func NewStreakService(
	db store.TxBeginner,
	streaks store.StreakStore,
	milestones []int,
	defaultTZ *time.Location,
	logger *slog.Logger,
	opts ...Option,
) StreakService {
	if db == nil {
		panic("db cannot be nil")
	}
	if streaks == nil {
		panic("streaks cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(milestones) == 0 {
		milestones = domainstreak.DefaultMilestones
	}
	if defaultTZ == nil {
		defaultTZ = time.UTC
	}

	s := &streakServiceImpl{
		db:         db,
		streaks:    streaks,
		milestones: milestones,
		defaultTZ:  defaultTZ,
		emitter:    events.NopEmitter{},
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "streak_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newError(operation, message string, err error) error {
	return service.NewServiceError("streak", operation, message, err)
}

// UpdateStreak implements StreakService.
func (s *streakServiceImpl) UpdateStreak(
	ctx context.Context,
	userID uuid.UUID,
	studyDate time.Time,
	timezone string,
) (*domain.StreakUpdate, error) {
	if studyDate.IsZero() {
		studyDate = s.now()
	}
	return s.update(ctx, userID, timezone, "update_streak",
		func(current *domain.StudyStreak, loc *time.Location) (*domain.StudyStreak, domain.StreakUpdate) {
			return domainstreak.Apply(current, studyDate, loc, s.milestones)
		})
}

// UpdateStreakForDate implements StreakService.
func (s *streakServiceImpl) UpdateStreakForDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	timezone string,
) (*domain.StreakUpdate, error) {
	if date.IsZero() {
		return nil, newError("update_streak_for_date", "invalid study date",
			domain.InvalidArgument("study_date", "is required"))
	}
	return s.update(ctx, userID, timezone, "update_streak_for_date",
		func(current *domain.StudyStreak, loc *time.Location) (*domain.StudyStreak, domain.StreakUpdate) {
			return domainstreak.ApplyOnDate(current, date, loc, s.milestones)
		})
}

type applyFunc func(current *domain.StudyStreak, loc *time.Location) (*domain.StudyStreak, domain.StreakUpdate)

// update locks the user's streak, applies the session in the resolved
// timezone and saves the result in one transaction.
func (s *streakServiceImpl) update(
	ctx context.Context,
	userID uuid.UUID,
	timezone string,
	operation string,
	apply applyFunc,
) (*domain.StreakUpdate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	var explicit *time.Location
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, newError(operation, "invalid timezone",
				domain.InvalidArgument("timezone", "is not a known IANA zone"))
		}
		explicit = loc
	}

	var update domain.StreakUpdate
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		streaks := s.streaks.WithTx(tx)

		current, err := s.lockStreak(ctx, streaks, userID, explicit)
		if err != nil {
			return err
		}

		loc := explicit
		if loc == nil {
			loc = s.storedLocation(log, current.Timezone)
		}

		next, u := apply(current, loc)
		update = u
		if u.Event == domain.StreakNone {
			return nil
		}

		next.UpdatedAt = s.now()
		return streaks.Upsert(ctx, next)
	})
	if err != nil {
		log.Error("failed to update streak", slog.String("error", err.Error()))
		return nil, newError(operation, "failed to update streak", err)
	}

	if update.Event != domain.StreakNone {
		s.emit(ctx, log, userID, update)
		log.Debug("streak updated",
			slog.String("event", string(update.Event)),
			slog.Int("current_streak", update.CurrentStreak),
			slog.Bool("new_milestone", update.IsNewMilestone))
	}
	return &update, nil
}

// GetStreak implements StreakService.
func (s *streakServiceImpl) GetStreak(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	st, err := s.streaks.Get(ctx, userID)
	if errors.Is(err, store.ErrStreakNotFound) {
		return domain.NewStudyStreak(userID, s.defaultTZ.String(), s.now()), nil
	}
	if err != nil {
		return nil, newError("get_streak", "failed to load streak", err)
	}
	return st, nil
}

// lockStreak returns the locked streak row, creating it first for users who
// never studied.
func (s *streakServiceImpl) lockStreak(
	ctx context.Context,
	streaks store.StreakStore,
	userID uuid.UUID,
	loc *time.Location,
) (*domain.StudyStreak, error) {
	current, err := streaks.GetForUpdate(ctx, userID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, store.ErrStreakNotFound) {
		return nil, err
	}

	if loc == nil {
		loc = s.defaultTZ
	}
	if _, err := streaks.CreateIfAbsent(ctx, domain.NewStudyStreak(userID, loc.String(), s.now())); err != nil {
		return nil, err
	}
	return streaks.GetForUpdate(ctx, userID)
}

func (s *streakServiceImpl) storedLocation(log *slog.Logger, name string) *time.Location {
	if name == "" {
		return s.defaultTZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("stored timezone is invalid, using default", slog.String("timezone", name))
		return s.defaultTZ
	}
	return loc
}

func (s *streakServiceImpl) emit(ctx context.Context, log *slog.Logger, userID uuid.UUID, u domain.StreakUpdate) {
	payload := events.StreakUpdatedPayload{
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		Event:         string(u.Event),
		Milestone:     u.Milestone,
	}
	if u.Broken != nil {
		prev, missed := u.Broken.PreviousStreak, u.Broken.DaysMissed
		payload.PreviousStreak = &prev
		payload.DaysMissed = &missed
	}

	event, err := events.NewEvent(events.TypeStreakUpdated, userID, payload, s.now())
	if err != nil {
		log.Warn("failed to build streak event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit streak event", slog.String("error", err.Error()))
	}
}
