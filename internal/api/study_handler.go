package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-scheduler/internal/api/shared"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service/study"
)

// StudyHandler serves the study queue and deck summaries.
type StudyHandler struct {
	study  study.StudyService
	logger *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(s study.StudyService, logger *slog.Logger) *StudyHandler {
	if s == nil {
		panic("study service cannot be nil for StudyHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		study:  s,
		logger: logger.With(slog.String("component", "study_handler")),
	}
}

// GetStudyQueue handles GET /api/users/{userID}/queue?deck_id=&shuffle=.
func (h *StudyHandler) GetStudyQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID")
	if !ok {
		return
	}
	deckID, err := shared.QueryUUID(r, "deck_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shuffle, err := shared.QueryBool(r, "shuffle")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.study.GetStudyQueue(r.Context(), ids[0], deckID, shuffle)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build study queue")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newStudyQueueResponse(cards))
}

// GetNextReviewInfo handles GET /api/users/{userID}/decks/{deckID}/next-review.
func (h *StudyHandler) GetNextReviewInfo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID", "deckID")
	if !ok {
		return
	}

	info, err := h.study.GetNextReviewInfo(r.Context(), ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load deck summary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}
