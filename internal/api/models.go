package api

import (
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
)

// ReviewCardRequest is the body of POST /cards/{cardID}/review.
type ReviewCardRequest struct {
	// Quality is the SM-2 grade; a pointer so that 0 is distinguishable from absent
	Quality          *int   `json:"quality"                     validate:"required,gte=0,lte=5"`
	StudyMode        string `json:"study_mode,omitempty"        validate:"omitempty,oneof=review cram quiz learn"`
	ResponseTimeMs   *int   `json:"response_time_ms,omitempty"  validate:"omitempty,gte=0"`
	ConfidenceRating *int   `json:"confidence_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Timezone         string `json:"timezone,omitempty"          validate:"omitempty,timezone"`
}

// ReviewCardResponse is the committed outcome of a review.
type ReviewCardResponse struct {
	Schedule *domain.CardSchedule `json:"schedule"`
	Review   *domain.ReviewRecord `json:"review"`
	Strategy srs.Strategy         `json:"strategy"`
}

// StudyQueueResponse lists the cards to study, due cards first.
type StudyQueueResponse struct {
	Cards    []domain.StudyCard `json:"cards"`
	Total    int                `json:"total"`
	DueCount int                `json:"due_count"`
	NewCount int                `json:"new_count"`
}

// UpdateStreakRequest is the body of POST /streak. Both fields are optional:
// the study date defaults to now and the timezone to the stored one.
// StudyDate is either a calendar date (YYYY-MM-DD) in the user's timezone or
// an RFC 3339 timestamp.
type UpdateStreakRequest struct {
	StudyDate string `json:"study_date,omitempty"`
	Timezone  string `json:"timezone,omitempty"   validate:"omitempty,timezone"`
}

func newStudyQueueResponse(cards []domain.StudyCard) StudyQueueResponse {
	resp := StudyQueueResponse{Cards: cards, Total: len(cards)}
	if resp.Cards == nil {
		resp.Cards = []domain.StudyCard{}
	}
	for _, c := range cards {
		if c.IsNew {
			resp.NewCount++
		} else {
			resp.DueCount++
		}
	}
	return resp
}
