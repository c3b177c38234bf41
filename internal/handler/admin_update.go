package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/security/middleware"
	"github.com/pazorg/candidatetrack/internal/service"
)

// AdminUpdateHandler applies admin mutations to candidate records: field
// patches, notes, email log entries and bulk stage moves.
type AdminUpdateHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewAdminUpdateHandler(admin *service.AdminService, logger *slog.Logger) *AdminUpdateHandler {
	return &AdminUpdateHandler{admin: admin, logger: logger}
}

// Patch handles PATCH /api/admin/candidates/{id} requests
func (h *AdminUpdateHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch service.AdminDataPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Error("failed to decode admin patch", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, err := h.admin.UpdateAdminData(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, withAdminView(c), h.logger)
}

type addNoteRequest struct {
	Text string `json:"text"`
}

// AddNote handles POST /api/admin/candidates/{id}/notes requests
func (h *AdminUpdateHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	author := ""
	if claims := middleware.GetClaimsFromContext(r.Context()); claims != nil {
		author = claims.Email
	}

	c, err := h.admin.AddNote(r.Context(), r.PathValue("id"), req.Text, author)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, withAdminView(c), h.logger)
}

type logEmailRequest struct {
	Subject string `json:"subject"`
	Type    string `json:"type"`
}

// LogEmail handles POST /api/admin/candidates/{id}/emails requests
func (h *AdminUpdateHandler) LogEmail(w http.ResponseWriter, r *http.Request) {
	var req logEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, err := h.admin.LogEmail(r.Context(), r.PathValue("id"), req.Subject, req.Type)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, withAdminView(c), h.logger)
}

type bulkStageRequest struct {
	IDs   []string             `json:"ids"`
	Stage domain.PipelineStage `json:"stage"`
}

// BulkStage handles POST /api/admin/candidates/bulk-stage requests
func (h *AdminUpdateHandler) BulkStage(w http.ResponseWriter, r *http.Request) {
	var req bulkStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	result, err := h.admin.BulkStageChange(r.Context(), req.IDs, req.Stage)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, result, h.logger)
}
