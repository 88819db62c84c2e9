package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults and bounds.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0

	// MinQuality and MaxQuality bound the recall-quality rating.
	MinQuality = 0
	MaxQuality = 5

	// PassingQuality is the lowest quality that counts as a successful recall.
	PassingQuality = 3
)

// Common validation errors for CardSchedule
var (
	ErrEmptyScheduleUserID = errors.New("card schedule user ID cannot be empty")
	ErrEmptyScheduleCardID = errors.New("card schedule card ID cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be at least 1 day")
	ErrInvalidRepetition   = errors.New("repetition cannot be negative")
	ErrInvalidEaseFactor   = errors.New("ease factor must be between 1.3 and 3.0")
)

// CardSchedule is the per-card SM-2 scheduling state.
// DueDate is nil until the card has been reviewed for the first time.
type CardSchedule struct {
	UserID         uuid.UUID  `json:"user_id"`
	CardID         uuid.UUID  `json:"card_id"`
	Repetition     int        `json:"repetition"`
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCardSchedule returns the initial state for a card that has never been reviewed.
func NewCardSchedule(userID, cardID uuid.UUID, now time.Time) (*CardSchedule, error) {
	s := &CardSchedule{
		UserID:     userID,
		CardID:     cardID,
		Repetition: 0,
		EaseFactor: DefaultEaseFactor,
		Interval:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the CardSchedule has valid data.
func (s *CardSchedule) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyScheduleUserID
	}
	if s.CardID == uuid.Nil {
		return ErrEmptyScheduleCardID
	}
	if s.Repetition < 0 {
		return ErrInvalidRepetition
	}
	if s.Interval < 1 {
		return ErrInvalidInterval
	}
	if s.EaseFactor < MinEaseFactor || s.EaseFactor > MaxEaseFactor {
		return ErrInvalidEaseFactor
	}
	return nil
}

// IsNew reports whether the card has never been successfully scheduled.
func (s *CardSchedule) IsNew() bool {
	return s.Repetition == 0 && s.DueDate == nil
}

// IsDue reports whether the card is eligible for review at now.
func (s *CardSchedule) IsDue(now time.Time) bool {
	return s.DueDate != nil && !s.DueDate.After(now)
}

// Clone returns a deep copy.
func (s *CardSchedule) Clone() *CardSchedule {
	c := *s
	if s.DueDate != nil {
		d := *s.DueDate
		c.DueDate = &d
	}
	if s.LastReviewedAt != nil {
		l := *s.LastReviewedAt
		c.LastReviewedAt = &l
	}
	return &c
}
