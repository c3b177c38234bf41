package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

// IntakeRequest is the reception-form payload.
type IntakeRequest struct {
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	City          string               `json:"city"`
	Questionnaire domain.Questionnaire `json:"questionnaire"`
}

// IntakeResponse reports the resolved record and whether the eligibility
// answer disqualified the applicant.
type IntakeResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Disqualified  bool   `json:"disqualified"`
	DisqualReason string `json:"disqualificationReason,omitempty"`
}

// IntakeHandler handles reception form submissions
type IntakeHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewIntakeHandler(funnel *service.FunnelService, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles POST /api/intake requests
func (h *IntakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode intake request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, err := h.funnel.SubmitIntake(r.Context(), service.IntakeSubmission{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		City:          req.City,
		Questionnaire: req.Questionnaire,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp := IntakeResponse{ID: c.ID, Status: c.Status}
	if c.Disqualified() {
		resp.Disqualified = true
		if dq := c.AdminView().QuestionnaireDisqualified; dq != nil {
			resp.DisqualReason = dq.Reason
		}
	}

	writeJSON(w, http.StatusCreated, resp, h.logger)
}
