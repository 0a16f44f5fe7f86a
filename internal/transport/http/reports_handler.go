package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "leadpulse/internal/errors"
	"leadpulse/internal/files"
)

// ReportsHandler serves the archive of generated report files.
type ReportsHandler struct {
	store        *files.Store
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(store *files.Store, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportsHandler{
		store:        store,
		logger:       logger.With(slog.String("component", "reports_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the reports routes.
func (h *ReportsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListReports)
	r.Get("/{name}", h.DownloadReport)
	return r
}

// ListReports handles GET /api/reports. It lists generated report files
// newest first.
func (h *ReportsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.List()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("list reports", err))
		return
	}
	if reports == nil {
		reports = []files.ReportFile{}
	}
	render.JSON(w, r, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// DownloadReport handles GET /api/reports/{name}. The name must be a file
// the exporter produced.
func (h *ReportsHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f, err := h.store.Open(name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("report"))
		return
	}
	defer f.Close()

	target, ok := exportTargets[strings.TrimPrefix(filepath.Ext(name), ".")]
	contentType := "application/octet-stream"
	if ok {
		contentType = target.contentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, f); err != nil {
		h.logger.ErrorContext(r.Context(), "report download failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
	}
}
