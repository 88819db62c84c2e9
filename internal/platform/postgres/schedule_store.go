package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresScheduleStore implements store.ScheduleStore.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of the ScheduleStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

const scheduleColumns = `user_id, card_id, repetition, ease_factor, interval_days, due_date,
	review_count, last_reviewed_at, created_at, updated_at`

// WithTx implements store.ScheduleStore.
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{db: tx, logger: s.logger}
}

// Get implements store.ScheduleStore.
func (s *PostgresScheduleStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error) {
	return s.get(ctx, "get", `
		SELECT `+scheduleColumns+`
		FROM card_schedules
		WHERE user_id = $1 AND card_id = $2`, userID, cardID)
}

// GetForUpdate implements store.ScheduleStore.
func (s *PostgresScheduleStore) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.CardSchedule, error) {
	return s.get(ctx, "get_for_update", `
		SELECT `+scheduleColumns+`
		FROM card_schedules
		WHERE user_id = $1 AND card_id = $2
		FOR UPDATE`, userID, cardID)
}

func (s *PostgresScheduleStore) get(
	ctx context.Context,
	operation string,
	query string,
	userID, cardID uuid.UUID,
) (*domain.CardSchedule, error) {
	var (
		cs             domain.CardSchedule
		dueDate        sql.NullTime
		lastReviewedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&cs.UserID, &cs.CardID, &cs.Repetition, &cs.EaseFactor, &cs.Interval, &dueDate,
		&cs.ReviewCount, &lastReviewedAt, &cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		return nil, wrapError("card_schedule", operation, err, store.ErrScheduleNotFound)
	}
	cs.DueDate = timePtr(dueDate)
	cs.LastReviewedAt = timePtr(lastReviewedAt)
	return &cs, nil
}

// CreateIfAbsent implements store.ScheduleStore.
func (s *PostgresScheduleStore) CreateIfAbsent(ctx context.Context, cs *domain.CardSchedule) (bool, error) {
	if err := cs.Validate(); err != nil {
		return false, store.NewStoreError("card_schedule", "create", err.Error(), store.ErrInvalidEntity)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO card_schedules (`+scheduleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, card_id) DO NOTHING`,
		cs.UserID, cs.CardID, cs.Repetition, cs.EaseFactor, cs.Interval, nullTime(cs.DueDate),
		cs.ReviewCount, nullTime(cs.LastReviewedAt), cs.CreatedAt, cs.UpdatedAt,
	)
	if err != nil {
		return false, wrapError("card_schedule", "create", err, nil)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, wrapError("card_schedule", "create", err, nil)
	}
	return n > 0, nil
}

// Upsert implements store.ScheduleStore.
func (s *PostgresScheduleStore) Upsert(ctx context.Context, cs *domain.CardSchedule) error {
	if err := cs.Validate(); err != nil {
		return store.NewStoreError("card_schedule", "upsert", err.Error(), store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO card_schedules (`+scheduleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			repetition = EXCLUDED.repetition,
			ease_factor = EXCLUDED.ease_factor,
			interval_days = EXCLUDED.interval_days,
			due_date = EXCLUDED.due_date,
			review_count = EXCLUDED.review_count,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			updated_at = EXCLUDED.updated_at`,
		cs.UserID, cs.CardID, cs.Repetition, cs.EaseFactor, cs.Interval, nullTime(cs.DueDate),
		cs.ReviewCount, nullTime(cs.LastReviewedAt), cs.CreatedAt, cs.UpdatedAt,
	)
	if err != nil {
		return wrapError("card_schedule", "upsert", err, nil)
	}

	s.logger.DebugContext(ctx, "schedule saved",
		slog.String("user_id", cs.UserID.String()),
		slog.String("card_id", cs.CardID.String()),
		slog.Int("interval", cs.Interval))
	return nil
}
