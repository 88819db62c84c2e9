package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresPatternStore implements store.PatternStore. The nested aggregates
// live in JSONB columns.
type PostgresPatternStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPatternStore creates a new PostgreSQL implementation of the PatternStore interface.
func NewPostgresPatternStore(db store.DBTX, logger *slog.Logger) *PostgresPatternStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPatternStore{
		db:     db,
		logger: logger.With(slog.String("component", "pattern_store")),
	}
}

var _ store.PatternStore = (*PostgresPatternStore)(nil)

// WithTx implements store.PatternStore.
func (s *PostgresPatternStore) WithTx(tx *sql.Tx) store.PatternStore {
	return &PostgresPatternStore{db: tx, logger: s.logger}
}

// Get implements store.PatternStore.
func (s *PostgresPatternStore) Get(ctx context.Context, userID uuid.UUID) (*domain.LearningPattern, error) {
	var (
		p            domain.LearningPattern
		timeOfDay    []byte
		difficulty   []byte
		retentionRaw []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, average_success_rate, learning_velocity, time_of_day_performance,
			difficulty_patterns, personal_ease_factor_bias, retention_curve, last_updated
		FROM learning_patterns
		WHERE user_id = $1`, userID,
	).Scan(
		&p.UserID, &p.AverageSuccessRate, &p.LearningVelocity, &timeOfDay,
		&difficulty, &p.PersonalEaseFactorBias, &retentionRaw, &p.LastUpdated,
	)
	if err != nil {
		return nil, wrapError("learning_pattern", "get", err, store.ErrPatternNotFound)
	}

	if err := unmarshalColumn(timeOfDay, &p.TimeOfDayPerformance); err != nil {
		return nil, store.NewStoreError("learning_pattern", "get", "invalid time_of_day_performance", err)
	}
	if err := unmarshalColumn(difficulty, &p.DifficultyPatterns); err != nil {
		return nil, store.NewStoreError("learning_pattern", "get", "invalid difficulty_patterns", err)
	}
	if err := unmarshalColumn(retentionRaw, &p.RetentionCurve); err != nil {
		return nil, store.NewStoreError("learning_pattern", "get", "invalid retention_curve", err)
	}
	return &p, nil
}

// Upsert implements store.PatternStore.
func (s *PostgresPatternStore) Upsert(ctx context.Context, p *domain.LearningPattern) error {
	timeOfDay, err := json.Marshal(p.TimeOfDayPerformance)
	if err != nil {
		return fmt.Errorf("marshal time_of_day_performance: %w", err)
	}
	difficulty, err := json.Marshal(p.DifficultyPatterns)
	if err != nil {
		return fmt.Errorf("marshal difficulty_patterns: %w", err)
	}
	curve := p.RetentionCurve
	if curve == nil {
		curve = []domain.RetentionPoint{}
	}
	retention, err := json.Marshal(curve)
	if err != nil {
		return fmt.Errorf("marshal retention_curve: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO learning_patterns (user_id, average_success_rate, learning_velocity,
			time_of_day_performance, difficulty_patterns, personal_ease_factor_bias,
			retention_curve, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			average_success_rate = EXCLUDED.average_success_rate,
			learning_velocity = EXCLUDED.learning_velocity,
			time_of_day_performance = EXCLUDED.time_of_day_performance,
			difficulty_patterns = EXCLUDED.difficulty_patterns,
			personal_ease_factor_bias = EXCLUDED.personal_ease_factor_bias,
			retention_curve = EXCLUDED.retention_curve,
			last_updated = EXCLUDED.last_updated`,
		p.UserID, p.AverageSuccessRate, p.LearningVelocity, timeOfDay, difficulty,
		p.PersonalEaseFactorBias, retention, p.LastUpdated,
	)
	if err != nil {
		return wrapError("learning_pattern", "upsert", err, nil)
	}
	return nil
}

// unmarshalColumn decodes a JSONB column, leaving v untouched when empty.
func unmarshalColumn(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
