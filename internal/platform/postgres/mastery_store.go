package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresMasteryStore implements store.MasteryStore.
type PostgresMasteryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMasteryStore creates a new PostgreSQL implementation of the MasteryStore interface.
func NewPostgresMasteryStore(db store.DBTX, logger *slog.Logger) *PostgresMasteryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMasteryStore{
		db:     db,
		logger: logger.With(slog.String("component", "mastery_store")),
	}
}

var _ store.MasteryStore = (*PostgresMasteryStore)(nil)

// WithTx implements store.MasteryStore.
func (s *PostgresMasteryStore) WithTx(tx *sql.Tx) store.MasteryStore {
	return &PostgresMasteryStore{db: tx, logger: s.logger}
}

// Get implements store.MasteryStore.
func (s *PostgresMasteryStore) Get(
	ctx context.Context,
	userID, conceptID uuid.UUID,
) (*domain.ConceptMastery, error) {
	var (
		m        domain.ConceptMastery
		trend    string
		category string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, concept_id, mastery_level, confidence_level, learning_velocity,
			difficulty_trend, mastery_category, updated_at
		FROM concept_mastery
		WHERE user_id = $1 AND concept_id = $2`, userID, conceptID,
	).Scan(
		&m.UserID, &m.ConceptID, &m.MasteryLevel, &m.ConfidenceLevel, &m.LearningVelocity,
		&trend, &category, &m.UpdatedAt,
	)
	if err != nil {
		return nil, wrapError("concept_mastery", "get", err, store.ErrMasteryNotFound)
	}
	m.DifficultyTrend = domain.DifficultyTrend(trend)
	m.MasteryCategory = domain.MasteryCategory(category)
	return &m, nil
}

// Upsert implements store.MasteryStore.
func (s *PostgresMasteryStore) Upsert(ctx context.Context, m *domain.ConceptMastery) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO concept_mastery (user_id, concept_id, mastery_level, confidence_level,
			learning_velocity, difficulty_trend, mastery_category, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, concept_id) DO UPDATE SET
			mastery_level = EXCLUDED.mastery_level,
			confidence_level = EXCLUDED.confidence_level,
			learning_velocity = EXCLUDED.learning_velocity,
			difficulty_trend = EXCLUDED.difficulty_trend,
			mastery_category = EXCLUDED.mastery_category,
			updated_at = EXCLUDED.updated_at`,
		m.UserID, m.ConceptID, m.MasteryLevel, m.ConfidenceLevel, m.LearningVelocity,
		string(m.DifficultyTrend), string(m.MasteryCategory), m.UpdatedAt,
	)
	if err != nil {
		return wrapError("concept_mastery", "upsert", err, nil)
	}
	return nil
}
