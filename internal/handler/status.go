package handler

import (
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/pipeline"
	"github.com/pazorg/candidatetrack/internal/service"
)

// StatusResponse is the candidate-facing view of pipeline progress. It
// exposes only the stage and its friendly copy, never admin data.
type StatusResponse struct {
	Stage   string `json:"stage"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// StatusHandler handles candidate status lookups by email
type StatusHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewStatusHandler(funnel *service.FunnelService, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles GET /api/status requests
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required", Field: "email"}, h.logger)
		return
	}

	_, info, err := h.funnel.StatusForEmail(r.Context(), email)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, statusResponseFromInfo(info), h.logger)
}

func statusResponseFromInfo(info pipeline.StageInfo) StatusResponse {
	return StatusResponse{
		Stage:   string(info.Stage),
		Label:   info.Label,
		Message: info.Message,
	}
}
