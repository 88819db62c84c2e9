package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `c.id, c.user_id, c.deck_id, c.concept_id, c.content, c.created_at, c.updated_at`

// studyCardQuery joins each card with its optional schedule row.
const studyCardQuery = `
	SELECT ` + cardColumns + `,
		s.repetition, s.ease_factor, s.interval_days, s.due_date,
		s.review_count, s.last_reviewed_at, s.created_at, s.updated_at
	FROM cards c
	LEFT JOIN card_schedules s ON s.card_id = c.id AND s.user_id = c.user_id`

// newCardPredicate selects cards without a schedule or never scheduled.
const newCardPredicate = `(s.card_id IS NULL OR (s.repetition = 0 AND s.due_date IS NULL))`

// WithTx implements store.CardStore.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// CreateDeck implements store.CardStore.
func (s *PostgresCardStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	if deck.ID == uuid.Nil || deck.UserID == uuid.Nil {
		return fmt.Errorf("%w: deck id and user id are required", store.ErrInvalidEntity)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		deck.ID, deck.UserID, deck.Name, deck.CreatedAt)
	if err != nil {
		return wrapError("deck", "create", err, nil)
	}
	return nil
}

// GetDeck implements store.CardStore.
func (s *PostgresCardStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var d domain.Deck
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM decks WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt)
	if err != nil {
		return nil, wrapError("deck", "get", err, store.ErrDeckNotFound)
	}
	return &d, nil
}

// CreateMultiple implements store.CardStore.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	for _, card := range cards {
		content := []byte(card.Content)
		if len(content) == 0 {
			content = []byte("{}")
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO cards (id, user_id, deck_id, concept_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			card.ID, card.UserID, card.DeckID, nullUUID(card.ConceptID), content,
			card.CreatedAt, card.UpdatedAt)
		if err != nil {
			return wrapError("card", "create", err, nil)
		}
	}

	s.logger.DebugContext(ctx, "cards created", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards c WHERE c.id = $1`, id)

	card, err := scanCard(row)
	if err != nil {
		return nil, wrapError("card", "get", err, store.ErrCardNotFound)
	}
	return card, nil
}

// ListDue implements store.CardStore.
func (s *PostgresCardStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	now time.Time,
) ([]domain.StudyCard, error) {
	query := studyCardQuery + `
	WHERE c.user_id = $1
		AND ($2::uuid IS NULL OR c.deck_id = $2)
		AND s.due_date IS NOT NULL AND s.due_date <= $3
	ORDER BY s.due_date ASC, c.id ASC`

	return s.queryStudyCards(ctx, "list_due", query, userID, nullUUID(deckID), now)
}

// ListNew implements store.CardStore.
func (s *PostgresCardStore) ListNew(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
	limit int,
) ([]domain.StudyCard, error) {
	if limit <= 0 {
		return []domain.StudyCard{}, nil
	}
	query := studyCardQuery + `
	WHERE c.user_id = $1
		AND ($2::uuid IS NULL OR c.deck_id = $2)
		AND ` + newCardPredicate + `
	ORDER BY c.created_at ASC, c.id ASC
	LIMIT $3`

	return s.queryStudyCards(ctx, "list_new", query, userID, nullUUID(deckID), limit)
}

// CountNew implements store.CardStore.
func (s *PostgresCardStore) CountNew(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM cards c
		LEFT JOIN card_schedules s ON s.card_id = c.id AND s.user_id = c.user_id
		WHERE c.user_id = $1 AND `+newCardPredicate, userID).Scan(&n)
	if err != nil {
		return 0, wrapError("card", "count_new", err, nil)
	}
	return n, nil
}

// ListByDeck implements store.CardStore.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.StudyCard, error) {
	query := studyCardQuery + `
	WHERE c.deck_id = $1
	ORDER BY c.created_at ASC, c.id ASC`

	return s.queryStudyCards(ctx, "list_by_deck", query, deckID)
}

// ListDueDatesUntil implements store.CardStore.
func (s *PostgresCardStore) ListDueDatesUntil(
	ctx context.Context,
	userID uuid.UUID,
	until time.Time,
) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT due_date FROM card_schedules
		WHERE user_id = $1 AND due_date IS NOT NULL AND due_date <= $2
		ORDER BY due_date ASC`, userID, until)
	if err != nil {
		return nil, wrapError("card_schedule", "list_due_dates", err, nil)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, wrapError("card_schedule", "list_due_dates", err, nil)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("card_schedule", "list_due_dates", err, nil)
	}
	return dates, nil
}

func (s *PostgresCardStore) queryStudyCards(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]domain.StudyCard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("card", operation, err, nil)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.StudyCard{}
	for rows.Next() {
		sc, err := scanStudyCard(rows)
		if err != nil {
			return nil, wrapError("card", operation, err, nil)
		}
		cards = append(cards, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("card", operation, err, nil)
	}
	return cards, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c         domain.Card
		conceptID uuid.NullUUID
		content   []byte
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.DeckID, &conceptID, &content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if conceptID.Valid {
		id := conceptID.UUID
		c.ConceptID = &id
	}
	c.Content = content
	return &c, nil
}

func scanStudyCard(row rowScanner) (*domain.StudyCard, error) {
	var (
		c              domain.Card
		conceptID      uuid.NullUUID
		content        []byte
		repetition     sql.NullInt64
		easeFactor     sql.NullFloat64
		interval       sql.NullInt64
		dueDate        sql.NullTime
		reviewCount    sql.NullInt64
		lastReviewedAt sql.NullTime
		createdAt      sql.NullTime
		updatedAt      sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.DeckID, &conceptID, &content, &c.CreatedAt, &c.UpdatedAt,
		&repetition, &easeFactor, &interval, &dueDate,
		&reviewCount, &lastReviewedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if conceptID.Valid {
		id := conceptID.UUID
		c.ConceptID = &id
	}
	c.Content = content

	sc := &domain.StudyCard{Card: c, IsNew: true}
	if !repetition.Valid {
		return sc, nil
	}

	sc.Schedule = &domain.CardSchedule{
		UserID:         c.UserID,
		CardID:         c.ID,
		Repetition:     int(repetition.Int64),
		EaseFactor:     easeFactor.Float64,
		Interval:       int(interval.Int64),
		DueDate:        timePtr(dueDate),
		ReviewCount:    int(reviewCount.Int64),
		LastReviewedAt: timePtr(lastReviewedAt),
		CreatedAt:      createdAt.Time,
		UpdatedAt:      updatedAt.Time,
	}
	sc.IsNew = sc.Schedule.IsNew()
	return sc, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
