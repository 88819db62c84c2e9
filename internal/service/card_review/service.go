package card_review

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/service"
)

// ReviewRequest is a graded answer for one card.
type ReviewRequest struct {
	// Quality is the SM-2 grade in [0,5]; 3 and above is a successful recall
	Quality int `json:"quality"`
	// StudyMode defaults to review
	StudyMode domain.StudyMode `json:"study_mode,omitempty"`
	// ResponseTimeMs is how long the user took to answer
	ResponseTimeMs *int `json:"response_time_ms,omitempty"`
	// ConfidenceRating is the user's self-reported confidence in [1,5]
	ConfidenceRating *int `json:"confidence_rating,omitempty"`
	// Timezone is the IANA zone of the reviewer; the service default is used when empty
	Timezone string `json:"timezone,omitempty"`
}

// ReviewResult is the committed outcome of a review.
type ReviewResult struct {
	Schedule *domain.CardSchedule `json:"schedule"`
	Review   *domain.ReviewRecord `json:"review"`
	Strategy srs.Strategy         `json:"strategy"`
}

// CardReviewService records reviews and manages per-card scheduling state.
type CardReviewService interface {
	// ReviewCard grades a card and reschedules it.
	//
	// The schedule row is locked for the duration of the transaction, so
	// concurrent reviews of the same card are serialized. A card that was
	// never initialized is initialized with the default state first.
	//
	// Returns:
	//   - domain.ErrInvalidArgument: quality, timezone or optional fields out of range
	//   - domain.ErrNotFound: the card does not exist or belongs to another user
	//   - domain.ErrStoreUnavailable: the database could not be reached
	ReviewCard(ctx context.Context, userID, cardID uuid.UUID, req ReviewRequest) (*ReviewResult, error)

	// InitializeCard creates the default scheduling state of a card. It is
	// idempotent and returns the existing state when already initialized.
	InitializeCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardSchedule, error)
}

const serviceName = "card_review"

func newError(operation, message string, err error) *service.ServiceError {
	return service.NewServiceError(serviceName, operation, message, err)
}
