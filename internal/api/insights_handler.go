package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/api/shared"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service/insights"
)

// InsightsHandler serves retention statistics and study recommendations.
type InsightsHandler struct {
	insights insights.InsightsService
	logger   *slog.Logger
}

// NewInsightsHandler creates an InsightsHandler.
func NewInsightsHandler(s insights.InsightsService, logger *slog.Logger) *InsightsHandler {
	if s == nil {
		panic("insights service cannot be nil for InsightsHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsHandler{
		insights: s,
		logger:   logger.With(slog.String("component", "insights_handler")),
	}
}

// GetRetentionRate handles GET /api/users/{userID}/retention?window_days=.
func (h *InsightsHandler) GetRetentionRate(w http.ResponseWriter, r *http.Request) {
	userID, windowDays, ok := h.userAndInt(w, r, "window_days")
	if !ok {
		return
	}
	rate, err := h.insights.GetRetentionRate(r.Context(), userID, windowDays)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute retention rate")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rate)
}

// GetReviewSummary handles GET /api/users/{userID}/summary?window_days=.
func (h *InsightsHandler) GetReviewSummary(w http.ResponseWriter, r *http.Request) {
	userID, windowDays, ok := h.userAndInt(w, r, "window_days")
	if !ok {
		return
	}
	summary, err := h.insights.GetReviewSummary(r.Context(), userID, windowDays)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// GetTodayStudyRecommendations handles GET /api/users/{userID}/recommendations/today?tz=.
func (h *InsightsHandler) GetTodayStudyRecommendations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	ids, ok := pathUUIDs(w, r, log, "userID")
	if !ok {
		return
	}
	rec, err := h.insights.GetTodayStudyRecommendations(r.Context(), ids[0], r.URL.Query().Get("tz"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build recommendation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rec)
}

// GetStudyRecommendations handles GET /api/users/{userID}/recommendations?days=&tz=.
func (h *InsightsHandler) GetStudyRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, days, ok := h.userAndInt(w, r, "days")
	if !ok {
		return
	}
	recs, err := h.insights.GetStudyRecommendations(r.Context(), userID, days, r.URL.Query().Get("tz"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build recommendations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, recs)
}

func (h *InsightsHandler) userAndInt(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, int, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	ids, ok := pathUUIDs(w, r, log, "userID")
	if !ok {
		return uuid.Nil, 0, false
	}
	n, err := shared.QueryInt(r, param)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, 0, false
	}
	return ids[0], n, true
}
