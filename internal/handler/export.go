package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pazorg/candidatetrack/internal/export"
	"github.com/pazorg/candidatetrack/internal/featureflags"
	"github.com/pazorg/candidatetrack/internal/observability/metrics"
	"github.com/pazorg/candidatetrack/internal/service"
)

// ExportHandler streams the full candidate list as CSV or, behind a flag,
// as a styled XLSX workbook.
type ExportHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewExportHandler(admin *service.AdminService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{admin: admin, logger: logger}
}

// CSV handles GET /api/admin/export.csv requests
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.admin.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	doc := export.CSV(candidates)
	metrics.ObserveExport("csv", len(candidates))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=candidates-%s.csv", time.Now().Format("2006-01-02")))
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("failed to write csv export", slog.String("error", err.Error()))
	}
}

// XLSX handles GET /api/admin/export.xlsx requests
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	if !featureflags.Enabled("xlsx_export") {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not available"}, h.logger)
		return
	}

	candidates, err := h.admin.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=candidates-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := export.XLSX(candidates, w); err != nil {
		h.logger.Error("failed to write xlsx export", slog.String("error", err.Error()))
		return
	}
	metrics.ObserveExport("xlsx", len(candidates))
}
