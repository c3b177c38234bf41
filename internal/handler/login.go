package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pazorg/candidatetrack/internal/service"
)

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler handles admin authentication
type LoginHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewLoginHandler(auth *service.AuthService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, logger: logger}
}

// ServeHTTP handles POST /api/admin/login requests
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode login request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"}, h.logger)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password required"}, h.logger)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("authentication failed", slog.String("email", req.Email))
		// Generic error to prevent account enumeration
		writeError(w, err, h.logger)
		return
	}

	h.logger.Info("admin logged in", slog.String("email", result.Email))
	writeJSON(w, http.StatusOK, result, h.logger)
}
