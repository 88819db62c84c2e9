package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-scheduler/internal/api/shared"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service/card_review"
)

// ReviewHandler serves card review and initialization.
type ReviewHandler struct {
	reviews card_review.CardReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews card_review.CardReviewService, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		panic("reviews cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// ReviewCard handles POST /api/users/{userID}/cards/{cardID}/review.
func (h *ReviewHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID", "cardID")
	if !ok {
		return
	}
	userID, cardID := ids[0], ids[1]

	var req ReviewCardRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	result, err := h.reviews.ReviewCard(r.Context(), userID, cardID, card_review.ReviewRequest{
		Quality:          *req.Quality,
		StudyMode:        domain.StudyMode(req.StudyMode),
		ResponseTimeMs:   req.ResponseTimeMs,
		ConfidenceRating: req.ConfidenceRating,
		Timezone:         req.Timezone,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record review")
		return
	}

	log.Debug("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("quality", *req.Quality),
		slog.String("strategy", string(result.Strategy)))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewCardResponse{
		Schedule: result.Schedule,
		Review:   result.Review,
		Strategy: result.Strategy,
	})
}

// InitializeCard handles POST /api/users/{userID}/cards/{cardID}/initialize.
func (h *ReviewHandler) InitializeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID", "cardID")
	if !ok {
		return
	}

	schedule, err := h.reviews.InitializeCard(r.Context(), ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to initialize card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, schedule)
}
