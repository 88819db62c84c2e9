package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/api/shared"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/redact"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.InvalidArgument(paramName, "is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.InvalidArgument(paramName, "has invalid format")
	}
	return id, nil
}

// pathUUIDs parses each named path parameter in order. On failure it writes
// a 400 response and reports false.
func pathUUIDs(w http.ResponseWriter, r *http.Request, log *slog.Logger, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := getPathUUID(r, name)
		if err != nil {
			log.Debug("invalid path parameter",
				slog.String("param_name", name),
				slog.String("value", chi.URLParam(r, name)))
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// decodeAndValidate decodes the body into req and validates it. On failure
// it writes a 400 response and reports false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, log *slog.Logger, req any) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("invalid request format", redact.Attr(err))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
