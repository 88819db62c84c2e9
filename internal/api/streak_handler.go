package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/api/shared"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service/streak"
)

// StreakHandler serves study streaks.
type StreakHandler struct {
	streaks streak.StreakService
	logger  *slog.Logger
}

// NewStreakHandler creates a StreakHandler.
func NewStreakHandler(s streak.StreakService, logger *slog.Logger) *StreakHandler {
	if s == nil {
		panic("streak service cannot be nil for StreakHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StreakHandler{
		streaks: s,
		logger:  logger.With(slog.String("component", "streak_handler")),
	}
}

// UpdateStreak handles POST /api/users/{userID}/streak.
func (h *StreakHandler) UpdateStreak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID")
	if !ok {
		return
	}

	var req UpdateStreakRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}
	studyDate, isLocalDate, err := parseStudyDate(req.StudyDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var update *domain.StreakUpdate
	if isLocalDate {
		update, err = h.streaks.UpdateStreakForDate(r.Context(), ids[0], studyDate, req.Timezone)
	} else {
		update, err = h.streaks.UpdateStreak(r.Context(), ids[0], studyDate, req.Timezone)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update streak")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, update)
}

// GetStreak handles GET /api/users/{userID}/streak.
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := pathUUIDs(w, r, log, "userID")
	if !ok {
		return
	}

	st, err := h.streaks.GetStreak(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load streak")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, st)
}

// parseStudyDate reads a YYYY-MM-DD calendar date, reported as local, or an
// RFC 3339 instant. An empty value yields the zero instant.
func parseStudyDate(raw string) (time.Time, bool, error) {
	if raw == "" {
		return time.Time{}, false, nil
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, domain.InvalidArgument("study_date", "must be a YYYY-MM-DD date or an RFC 3339 timestamp")
}
