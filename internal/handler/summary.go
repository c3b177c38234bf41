package handler

import (
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/service"
)

type SummaryResponse struct {
	ID         string   `json:"id"`
	Paragraphs []string `json:"paragraphs"`
}

// SummaryHandler serves the deterministic narrative summary for an
// assessed candidate.
type SummaryHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewSummaryHandler(admin *service.AdminService, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{admin: admin, logger: logger}
}

// ServeHTTP handles GET /api/admin/candidates/{id}/summary requests
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	paragraphs, err := h.admin.Summary(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{ID: id, Paragraphs: paragraphs}, h.logger)
}
