package handler

import (
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// QuestionsHandler serves the static form catalog: occupation options,
// background areas and the assessment question banks. The frontends render
// from this so question text lives in exactly one place.
type QuestionsHandler struct {
	log *slog.Logger
}

func NewQuestionsHandler(log *slog.Logger) *QuestionsHandler {
	return &QuestionsHandler{log: log}
}

type optionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type questionCatalog struct {
	OccupationOptions         []optionResponse  `json:"occupationOptions"`
	IntakeBackgroundAreas     []string          `json:"intakeBackgroundAreas"`
	AssessmentBackgroundAreas []string          `json:"assessmentBackgroundAreas"`
	LikertQuestions           []domain.Question `json:"likertQuestions"`
	TrueScaleQuestions        []domain.Question `json:"trueScaleQuestions"`
}

// ServeHTTP handles GET /api/questions requests
func (h *QuestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	occupations := make([]optionResponse, 0, len(domain.OccupationOptions))
	for _, o := range domain.OccupationOptions {
		occupations = append(occupations, optionResponse{Value: o.Value, Label: o.Label})
	}

	writeJSON(w, http.StatusOK, questionCatalog{
		OccupationOptions:         occupations,
		IntakeBackgroundAreas:     domain.IntakeBackgroundAreas,
		AssessmentBackgroundAreas: domain.AssessmentBackgroundAreas,
		LikertQuestions:           domain.LikertQuestions,
		TrueScaleQuestions:        domain.TrueScaleQuestions,
	}, h.log)
}
