package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "leadpulse/internal/errors"
	"leadpulse/internal/exporter"
	"leadpulse/internal/infrastructure"
	apiv1 "leadpulse/pkg/contracts/api/v1"
	"leadpulse/pkg/contracts/domain"
)

// exportTarget binds a format to its writer and response headers.
type exportTarget struct {
	contentType string
	extension   string
	write       func(io.Writer, *domain.Snapshot) error
}

var exportTargets = map[string]exportTarget{
	"csv": {
		contentType: "text/csv; charset=utf-8",
		extension:   "csv",
		write:       exporter.WriteAccountsCSV,
	},
	"json": {
		contentType: "application/json; charset=utf-8",
		extension:   "json",
		write:       exporter.WriteSnapshotJSON,
	},
	"xlsx": {
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		extension:   "xlsx",
		write:       exporter.WriteWorkbook,
	},
}

// ExportHandler streams snapshot reports in downloadable formats.
type ExportHandler struct {
	service      DashboardServiceInterface
	metrics      *infrastructure.AppMetrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler. Metrics may be nil.
func NewExportHandler(service DashboardServiceInterface, metrics *infrastructure.AppMetrics, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{
		service:      service,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{format}", h.Export)
	return r
}

// Export handles GET /api/export/{format}. The snapshot is recomputed for
// the requested window and streamed as an attachment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	start, end, apiErr := parseDateRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	req := apiv1.ExportRequest{Format: chi.URLParam(r, "format")}
	if err := validate.StructPartial(req, "Format"); err != nil {
		h.errorHandler.HandleError(w, r,
			apierrors.ErrValidation("format", fmt.Sprintf("unsupported export format %q", req.Format)))
		return
	}
	target := exportTargets[req.Format]

	snap, err := h.service.Snapshot(r.Context(), start, end)
	if err != nil {
		var appErr *apierrors.AppError
		if !errors.As(err, &appErr) {
			err = apierrors.DataSourceError(err)
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("leadpulse_report_%s.%s",
		snap.GeneratedAt.Format("2006-01-02"), target.extension)
	w.Header().Set("Content-Type", target.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := target.write(w, snap); err != nil {
		// Headers are already sent; log instead of rendering a problem.
		h.logger.ErrorContext(r.Context(), "export stream failed",
			slog.String("format", req.Format),
			slog.String("error", err.Error()))
		return
	}

	if h.metrics != nil {
		h.metrics.RecordExport(r.Context(), req.Format)
	}

	h.logger.InfoContext(r.Context(), "report exported",
		slog.String("format", req.Format),
		slog.Int("accounts", snap.TotalAccounts))
}
