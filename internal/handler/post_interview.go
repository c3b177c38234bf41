package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

// PostInterviewRequest records interview completion, consent and the CEO
// invite answer for a known candidate.
type PostInterviewRequest struct {
	InterviewCompleted bool   `json:"interviewCompleted"`
	Consent            bool   `json:"consent"`
	CEOInvite          string `json:"ceoInvite"`
}

type PostInterviewResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type PostInterviewHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewPostInterviewHandler(funnel *service.FunnelService, logger *slog.Logger) *PostInterviewHandler {
	return &PostInterviewHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles POST /api/candidates/{id}/post-interview requests
func (h *PostInterviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "candidate id required"}, h.logger)
		return
	}

	var req PostInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode post-interview request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, err := h.funnel.SubmitPostInterview(r.Context(), id, domain.PostInterview{
		InterviewCompleted: req.InterviewCompleted,
		Consent:            req.Consent,
		CEOInvite:          req.CEOInvite,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, PostInterviewResponse{ID: c.ID, Status: c.Status}, h.logger)
}
