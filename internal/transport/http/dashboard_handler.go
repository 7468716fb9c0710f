package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"registrydash/internal/config"
	apierrors "registrydash/internal/errors"
	"registrydash/internal/exporter"
	"registrydash/internal/infrastructure"
	"registrydash/internal/services"
	"registrydash/pkg/contracts/domain"
)

// DashboardRequest is the JSON body of POST /api/dashboard.
type DashboardRequest struct {
	domain.FilterCriteria
	domain.Page
}

// DashboardHandler serves the filtered registry views
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "dashboard_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes as a router to mount under /api
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register adds the dashboard routes to r
func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/options", h.GetOptions)
	r.Get("/criteria/default", h.GetDefaultCriteria)
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/dashboard", h.PostDashboard)
	r.Get("/records", h.GetRecords)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/charts/{kind}", h.GetChart)
}

// GetOptions handles GET /api/options?region=...
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context(), values(r.URL.Query(), paramRegion))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// GetDefaultCriteria handles GET /api/criteria/default
func (h *DashboardHandler) GetDefaultCriteria(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.DefaultCriteria())
}

// GetDashboard handles GET /api/dashboard with criteria in the query string
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	c, page, err := ParseCriteria(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.evaluate(w, r, c, page)
}

// PostDashboard handles POST /api/dashboard with criteria as JSON
func (h *DashboardHandler) PostDashboard(w http.ResponseWriter, r *http.Request) {
	var req DashboardRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	h.evaluate(w, r, req.FilterCriteria, req.Page)
}

func (h *DashboardHandler) evaluate(w http.ResponseWriter, r *http.Request, c domain.FilterCriteria, page domain.Page) {
	dash, err := h.service.Evaluate(r.Context(), c, page)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "dashboard evaluated",
		slog.Bool("empty", dash.Empty),
		slog.Int("total", dash.Total),
		slog.Int("rows", dash.RowCount),
		slog.String("request_id", infrastructure.GetTraceID(r.Context())),
	)
	render.JSON(w, r, dash)
}

// GetRecords handles GET /api/records
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	c, page, err := ParseCriteria(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records, err := h.service.Records(r.Context(), c, page)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, records)
}

// ExportCSV handles GET /api/export.csv. The file is built in memory so a
// failure can still be reported as a problem response.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	c, _, err := ParseCriteria(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	bom, err := boolParam(r.URL.Query(), paramBOM)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	n, err := h.service.ExportCSV(r.Context(), c, &buf, exporter.WriteOptions{BOMPrefix: bom})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "csv exported",
		slog.Int("records", n),
		slog.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", config.CSVContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", config.DefaultExportFileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Record-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetChart handles GET /api/charts/{kind}?format=png|svg
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseChartKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	format, err := exporter.ParseFormat(r.URL.Query().Get(paramFormat))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	c, _, err := ParseCriteria(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = h.service.RenderChart(r.Context(), c, kind, format, &buf)
	if errors.Is(err, services.ErrEmptyChart) {
		// Nothing to draw for this selection.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
