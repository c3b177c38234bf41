package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError maps domain errors onto HTTP status codes. Unexpected errors
// become a generic 500 so internals never leak to callers.
func writeError(w http.ResponseWriter, err error, log *slog.Logger) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Reason, Field: verr.Field}, log)
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"}, log)
	case errors.Is(err, domain.ErrAssessmentCompleted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "assessment already completed"}, log)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}, log)
	default:
		if log != nil {
			log.Error("request failed", slog.String("error", err.Error()))
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"}, log)
	}
}
