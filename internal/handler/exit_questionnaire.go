package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/featureflags"
	"github.com/pazorg/candidatetrack/internal/service"
)

// ExitQuestionnaireRequest is the post-career-overview payload.
type ExitQuestionnaireRequest struct {
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Questionnaire domain.Questionnaire `json:"questionnaire"`
}

type ExitQuestionnaireResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ExitQuestionnaireHandler handles exit questionnaire submissions. The
// endpoint is feature-flagged so the form can be rolled out per cohort.
type ExitQuestionnaireHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewExitQuestionnaireHandler(funnel *service.FunnelService, logger *slog.Logger) *ExitQuestionnaireHandler {
	return &ExitQuestionnaireHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles POST /api/exit-questionnaire requests
func (h *ExitQuestionnaireHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !featureflags.Enabled("exit_questionnaire") {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not available"}, h.logger)
		return
	}

	var req ExitQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode exit questionnaire", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, err := h.funnel.SubmitExitQuestionnaire(r.Context(), service.ExitSubmission{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Questionnaire: req.Questionnaire,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ExitQuestionnaireResponse{ID: c.ID, Status: c.Status}, h.logger)
}
