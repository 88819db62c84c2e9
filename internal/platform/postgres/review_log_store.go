package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresReviewLogStore implements store.ReviewLogStore.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the ReviewLogStore interface.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

const reviewColumns = `id, user_id, card_id, quality, was_successful,
	repetition_before, repetition_after, interval_before, interval_after,
	ease_factor_before, ease_factor_after, due_date_before, due_date_after,
	reviewed_at, study_mode, response_time_ms, confidence_rating, hour_of_day`

// WithTx implements store.ReviewLogStore.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{db: tx, logger: s.logger}
}

// Create implements store.ReviewLogStore.
func (s *PostgresReviewLogStore) Create(ctx context.Context, r *domain.ReviewRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_records (`+reviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		r.ID, r.UserID, r.CardID, r.Quality, r.WasSuccessful,
		r.RepetitionBefore, r.RepetitionAfter, r.IntervalBefore, r.IntervalAfter,
		r.EaseFactorBefore, r.EaseFactorAfter, nullTime(r.DueDateBefore), r.DueDateAfter,
		r.ReviewedAt, string(r.StudyMode), nullInt(r.ResponseTimeMs), nullInt(r.ConfidenceRating),
		r.HourOfDay,
	)
	if err != nil {
		return wrapError("review_record", "create", err, nil)
	}
	return nil
}

// ListSince implements store.ReviewLogStore.
func (s *PostgresReviewLogStore) ListSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]domain.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM review_records
		WHERE user_id = $1 AND reviewed_at >= $2
		ORDER BY reviewed_at DESC`, userID, since)
	if err != nil {
		return nil, wrapError("review_record", "list", err, nil)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.ReviewRecord{}
	for rows.Next() {
		var (
			r                domain.ReviewRecord
			mode             string
			dueDateBefore    sql.NullTime
			responseTimeMs   sql.NullInt64
			confidenceRating sql.NullInt64
		)
		err := rows.Scan(
			&r.ID, &r.UserID, &r.CardID, &r.Quality, &r.WasSuccessful,
			&r.RepetitionBefore, &r.RepetitionAfter, &r.IntervalBefore, &r.IntervalAfter,
			&r.EaseFactorBefore, &r.EaseFactorAfter, &dueDateBefore, &r.DueDateAfter,
			&r.ReviewedAt, &mode, &responseTimeMs, &confidenceRating, &r.HourOfDay,
		)
		if err != nil {
			return nil, wrapError("review_record", "list", err, nil)
		}
		r.StudyMode = domain.StudyMode(mode)
		r.DueDateBefore = timePtr(dueDateBefore)
		r.ResponseTimeMs = intPtr(responseTimeMs)
		r.ConfidenceRating = intPtr(confidenceRating)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("review_record", "list", err, nil)
	}
	return records, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
