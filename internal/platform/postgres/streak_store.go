package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresStreakStore implements store.StreakStore.
type PostgresStreakStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStreakStore creates a new PostgreSQL implementation of the StreakStore interface.
func NewPostgresStreakStore(db store.DBTX, logger *slog.Logger) *PostgresStreakStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStreakStore{
		db:     db,
		logger: logger.With(slog.String("component", "streak_store")),
	}
}

var _ store.StreakStore = (*PostgresStreakStore)(nil)

const streakColumns = `user_id, current_streak, longest_streak, last_study_date, streak_start_date,
	timezone, milestones_reached, last_milestone, total_study_days, created_at, updated_at`

// WithTx implements store.StreakStore.
func (s *PostgresStreakStore) WithTx(tx *sql.Tx) store.StreakStore {
	return &PostgresStreakStore{db: tx, logger: s.logger}
}

// Get implements store.StreakStore.
func (s *PostgresStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	return s.get(ctx, "get", `SELECT `+streakColumns+` FROM study_streaks WHERE user_id = $1`, userID)
}

// GetForUpdate implements store.StreakStore.
func (s *PostgresStreakStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.StudyStreak, error) {
	return s.get(ctx, "get_for_update",
		`SELECT `+streakColumns+` FROM study_streaks WHERE user_id = $1 FOR UPDATE`, userID)
}

func (s *PostgresStreakStore) get(
	ctx context.Context,
	operation string,
	query string,
	userID uuid.UUID,
) (*domain.StudyStreak, error) {
	var (
		st            domain.StudyStreak
		lastStudy     sql.NullTime
		streakStart   sql.NullTime
		milestones    []byte
		lastMilestone sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&st.UserID, &st.CurrentStreak, &st.LongestStreak, &lastStudy, &streakStart,
		&st.Timezone, &milestones, &lastMilestone, &st.TotalStudyDays, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, wrapError("study_streak", operation, err, store.ErrStreakNotFound)
	}

	st.LastStudyDate = datePtr(lastStudy)
	st.StreakStartDate = datePtr(streakStart)
	st.LastMilestone = intPtr(lastMilestone)
	st.MilestonesReached = []int{}
	if err := unmarshalColumn(milestones, &st.MilestonesReached); err != nil {
		return nil, store.NewStoreError("study_streak", operation, "invalid milestones_reached", err)
	}
	return &st, nil
}

// CreateIfAbsent implements store.StreakStore.
func (s *PostgresStreakStore) CreateIfAbsent(ctx context.Context, st *domain.StudyStreak) (bool, error) {
	args, err := streakArgs(st)
	if err != nil {
		return false, err
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO study_streaks (`+streakColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING`, args...)
	if err != nil {
		return false, wrapError("study_streak", "create", err, nil)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, wrapError("study_streak", "create", err, nil)
	}
	return n > 0, nil
}

// Upsert implements store.StreakStore.
func (s *PostgresStreakStore) Upsert(ctx context.Context, st *domain.StudyStreak) error {
	args, err := streakArgs(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO study_streaks (`+streakColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_study_date = EXCLUDED.last_study_date,
			streak_start_date = EXCLUDED.streak_start_date,
			timezone = EXCLUDED.timezone,
			milestones_reached = EXCLUDED.milestones_reached,
			last_milestone = EXCLUDED.last_milestone,
			total_study_days = EXCLUDED.total_study_days,
			updated_at = EXCLUDED.updated_at`, args...)
	if err != nil {
		return wrapError("study_streak", "upsert", err, nil)
	}
	return nil
}

func streakArgs(st *domain.StudyStreak) ([]any, error) {
	milestones := st.MilestonesReached
	if milestones == nil {
		milestones = []int{}
	}
	raw, err := json.Marshal(milestones)
	if err != nil {
		return nil, fmt.Errorf("marshal milestones_reached: %w", err)
	}
	var lastMilestone sql.NullInt64
	if st.LastMilestone != nil {
		lastMilestone = sql.NullInt64{Int64: int64(*st.LastMilestone), Valid: true}
	}
	return []any{
		st.UserID, st.CurrentStreak, st.LongestStreak, nullTime(st.LastStudyDate),
		nullTime(st.StreakStartDate), st.Timezone, raw, lastMilestone, st.TotalStudyDays,
		st.CreatedAt, st.UpdatedAt,
	}, nil
}

// datePtr returns a DATE column as midnight UTC.
func datePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	y, m, d := t.Time.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
