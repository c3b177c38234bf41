package handler

import (
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/infrastructure/objectstore"
	"github.com/pazorg/candidatetrack/internal/service"
)

type ResumeUploadResponse struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	ResumeURLs []string `json:"resumeUrls"`
}

// ResumeUploadHandler accepts a multipart resume upload and appends the
// stored URL to the candidate's resume list.
type ResumeUploadHandler struct {
	funnel *service.FunnelService
	logger *slog.Logger
}

func NewResumeUploadHandler(funnel *service.FunnelService, logger *slog.Logger) *ResumeUploadHandler {
	return &ResumeUploadHandler{funnel: funnel, logger: logger}
}

// ServeHTTP handles POST /api/candidates/{id}/resume requests
func (h *ResumeUploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "candidate id required"}, h.logger)
		return
	}

	if err := r.ParseMultipartForm(objectstore.MaxResumeSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"}, h.logger)
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "resume file is required", Field: "resume"}, h.logger)
		return
	}
	defer file.Close()

	if header.Size > objectstore.MaxResumeSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"}, h.logger)
		return
	}

	c, url, err := h.funnel.UploadResume(r.Context(), id, header.Filename, header.Size, file)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	resumeURLs := []string{}
	if c.ApplicantQuestionnaire != nil {
		resumeURLs = c.ApplicantQuestionnaire.ResumeURLs
	}

	writeJSON(w, http.StatusCreated, ResumeUploadResponse{
		ID:         c.ID,
		URL:        url,
		ResumeURLs: resumeURLs,
	}, h.logger)
}
