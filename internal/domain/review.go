package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyMode identifies how a review was performed.
type StudyMode string

// Known study modes. Unknown values are stored as given.
const (
	StudyModeReview StudyMode = "review"
	StudyModeCram   StudyMode = "cram"
	StudyModeQuiz   StudyMode = "quiz"
	StudyModeLearn  StudyMode = "learn"
)

// ReviewRecord is the immutable audit row written for every review.
// It snapshots the scheduling state before and after the review.
type ReviewRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	CardID uuid.UUID `json:"card_id"`

	Quality       int  `json:"quality"`
	WasSuccessful bool `json:"was_successful"`

	RepetitionBefore int        `json:"repetition_before"`
	RepetitionAfter  int        `json:"repetition_after"`
	IntervalBefore   int        `json:"interval_before"`
	IntervalAfter    int        `json:"interval_after"`
	EaseFactorBefore float64    `json:"ease_factor_before"`
	EaseFactorAfter  float64    `json:"ease_factor_after"`
	DueDateBefore    *time.Time `json:"due_date_before,omitempty"`
	DueDateAfter     time.Time  `json:"due_date_after"`

	ReviewedAt       time.Time `json:"reviewed_at"`
	StudyMode        StudyMode `json:"study_mode"`
	ResponseTimeMs   *int      `json:"response_time_ms,omitempty"`
	ConfidenceRating *int      `json:"confidence_rating,omitempty"`
	HourOfDay        int       `json:"hour_of_day"`
}

// NewReviewRecord builds the audit row for a transition from before to after.
// hour is the local hour of the review in the reviewer's timezone.
func NewReviewRecord(
	before, after *CardSchedule,
	quality int,
	mode StudyMode,
	reviewedAt time.Time,
	hour int,
) *ReviewRecord {
	if mode == "" {
		mode = StudyModeReview
	}
	r := &ReviewRecord{
		ID:               uuid.New(),
		UserID:           after.UserID,
		CardID:           after.CardID,
		Quality:          quality,
		WasSuccessful:    quality >= PassingQuality,
		RepetitionBefore: before.Repetition,
		RepetitionAfter:  after.Repetition,
		IntervalBefore:   before.Interval,
		IntervalAfter:    after.Interval,
		EaseFactorBefore: before.EaseFactor,
		EaseFactorAfter:  after.EaseFactor,
		ReviewedAt:       reviewedAt,
		StudyMode:        mode,
		HourOfDay:        hour,
	}
	if before.DueDate != nil {
		d := *before.DueDate
		r.DueDateBefore = &d
	}
	if after.DueDate != nil {
		r.DueDateAfter = *after.DueDate
	}
	return r
}
