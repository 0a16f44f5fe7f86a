package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "leadpulse/internal/errors"
	"leadpulse/internal/services"
	"leadpulse/internal/source"
)

// DashboardHandler serves the aggregated dashboard snapshot.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetDashboard)
	r.Get("/latest", h.GetLatest)
	return r
}

// GetDashboard handles GET /api/dashboard. It recomputes a snapshot from the
// current source data, honoring the optional start/end creation-date window.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start, end, apiErr := parseDateRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	snap, err := h.service.Snapshot(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "dashboard served",
		slog.String("data_source", snap.DataSource),
		slog.Int("total_accounts", snap.TotalAccounts))

	render.JSON(w, r, snap)
}

// GetLatest handles GET /api/dashboard/latest. It serves the cached
// snapshot without touching the data sources.
func (h *DashboardHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Latest()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("snapshot"))
		return
	}
	render.JSON(w, r, snap)
}

// mapServiceError converts pipeline failures into API errors. Typed source
// failures pass through unchanged so the error handler can map them.
func (h *DashboardHandler) mapServiceError(err error) error {
	var appErr *apierrors.AppError
	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		return apierrors.ErrValidation("date_range", "start must not be after end")
	case errors.Is(err, source.ErrMissingCredential):
		return apierrors.ErrCredentialMissing
	case errors.As(err, &appErr):
		return err
	default:
		return apierrors.DataSourceError(err)
	}
}
