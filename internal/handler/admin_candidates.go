package handler

import (
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

// AdminCandidatesHandler serves the admin pipeline views: list, detail and
// delete. Responses carry admin data materialized with defaults so the
// dashboard never sees a null adminData.
type AdminCandidatesHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewAdminCandidatesHandler(admin *service.AdminService, logger *slog.Logger) *AdminCandidatesHandler {
	return &AdminCandidatesHandler{admin: admin, logger: logger}
}

// withAdminView returns a copy of c whose AdminData is merged with defaults.
func withAdminView(c *domain.Candidate) *domain.Candidate {
	view := c.AdminView()
	out := *c
	out.AdminData = &view
	return &out
}

// List handles GET /api/admin/candidates requests
func (h *AdminCandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.admin.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	out := make([]*domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, withAdminView(c))
	}

	writeJSON(w, http.StatusOK, map[string]any{"candidates": out}, h.logger)
}

// Get handles GET /api/admin/candidates/{id} requests
func (h *AdminCandidatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.admin.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, withAdminView(c), h.logger)
}

// Delete handles DELETE /api/admin/candidates/{id} requests
func (h *AdminCandidatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.admin.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.logger.Info("candidate deleted", slog.String("candidate_id", id))
	w.WriteHeader(http.StatusNoContent)
}
