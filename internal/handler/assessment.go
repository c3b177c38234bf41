package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

// AssessmentLookupHandler resolves a candidate by email before the
// assessment room opens. A candidate who already finished gets a completed
// marker instead of a second attempt.
type AssessmentLookupHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewAssessmentLookupHandler(funnel *service.FunnelService, logger *slog.Logger) *AssessmentLookupHandler {
	return &AssessmentLookupHandler{funnel: funnel, logger: logger}
}

type AssessmentLookupResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Completed bool   `json:"completed"`
}

// ServeHTTP handles GET /api/assessment/lookup requests
func (h *AssessmentLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required", Field: "email"}, h.logger)
		return
	}

	c, err := h.funnel.LookupForAssessment(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentCompleted) && c != nil {
			writeJSON(w, http.StatusOK, AssessmentLookupResponse{
				ID:        c.ID,
				FirstName: c.FirstName,
				LastName:  c.LastName,
				Email:     c.Email,
				Completed: true,
			}, h.logger)
			return
		}
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, AssessmentLookupResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}, h.logger)
}

// AssessmentSubmitRequest carries optional identity overrides plus the full
// answer set.
type AssessmentSubmitRequest struct {
	FirstName  string                `json:"firstName"`
	LastName   string                `json:"lastName"`
	Email      string                `json:"email"`
	Phone      string                `json:"phone"`
	City       string                `json:"city"`
	Assessment domain.AssessmentData `json:"assessment"`
}

type AssessmentSubmitResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Score       int     `json:"score"`
	MaxScore    int     `json:"maxScore"`
	Percentage  float64 `json:"percentage"`
	FitCategory string  `json:"fitCategory"`
}

type AssessmentSubmitHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewAssessmentSubmitHandler(funnel *service.FunnelService, logger *slog.Logger) *AssessmentSubmitHandler {
	return &AssessmentSubmitHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles POST /api/candidates/{id}/assessment requests
func (h *AssessmentSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "candidate id required"}, h.logger)
		return
	}

	var req AssessmentSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode assessment request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	c, result, err := h.funnel.SubmitAssessment(r.Context(), id, service.AssessmentSubmission{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		City:       req.City,
		Assessment: req.Assessment,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, AssessmentSubmitResponse{
		ID:          c.ID,
		Status:      c.Status,
		Score:       result.Score,
		MaxScore:    result.MaxScore,
		Percentage:  result.Percentage,
		FitCategory: result.FitCategory,
	}, h.logger)
}
