package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "registrydash/internal/errors"
	"registrydash/internal/exporter"
	"registrydash/internal/services"
	"registrydash/internal/shared/testutil"
	"registrydash/pkg/contracts/domain"
)

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Options(ctx context.Context, regions []string) (domain.FilterOptions, error) {
	args := m.Called(ctx, regions)
	return args.Get(0).(domain.FilterOptions), args.Error(1)
}

func (m *mockDashboardService) DefaultCriteria() domain.FilterCriteria {
	return m.Called().Get(0).(domain.FilterCriteria)
}

func (m *mockDashboardService) Evaluate(ctx context.Context, c domain.FilterCriteria, page domain.Page) (*domain.Dashboard, error) {
	args := m.Called(ctx, c, page)
	dash, _ := args.Get(0).(*domain.Dashboard)
	return dash, args.Error(1)
}

func (m *mockDashboardService) Records(ctx context.Context, c domain.FilterCriteria, page domain.Page) (domain.RecordPage, error) {
	args := m.Called(ctx, c, page)
	return args.Get(0).(domain.RecordPage), args.Error(1)
}

func (m *mockDashboardService) ExportCSV(ctx context.Context, c domain.FilterCriteria, w io.Writer, opts exporter.WriteOptions) (int, error) {
	args := m.Called(ctx, c, w, opts)
	if s, ok := args.Get(0).(string); ok && s != "" {
		_, _ = io.WriteString(w, s)
	}
	return args.Int(1), args.Error(2)
}

func (m *mockDashboardService) RenderChart(ctx context.Context, c domain.FilterCriteria, kind domain.ChartKind, format exporter.Format, w io.Writer) error {
	args := m.Called(ctx, c, kind, format, w)
	if s, ok := args.Get(0).(string); ok && s != "" {
		_, _ = io.WriteString(w, s)
	}
	return args.Error(1)
}

func newTestRouter(t *testing.T, svc DashboardServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api", h.Routes())
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func problemType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, apierrors.ContentType, rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	typ, _ := body["type"].(string)
	return typ
}

func TestDashboardHandler_GetOptions(t *testing.T) {
	svc := new(mockDashboardService)
	opts := domain.FilterOptions{Regions: []string{"COSTA", "SIERRA"}, Provinces: []string{"PICHINCHA"}}
	svc.On("Options", mock.Anything, []string{"SIERRA"}).Return(opts, nil)

	rec := serve(t, newTestRouter(t, svc), http.MethodGet, "/api/options?region=SIERRA", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"PICHINCHA"}, got.Provinces)
	svc.AssertExpectations(t)
}

func TestDashboardHandler_GetDefaultCriteria(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("DefaultCriteria").Return(domain.FilterCriteria{Regions: []string{"COSTA"}})

	rec := serve(t, newTestRouter(t, svc), http.MethodGet, "/api/criteria/default", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"regions":["COSTA"]}`, rec.Body.String())
}

func TestDashboardHandler_Dashboard(t *testing.T) {
	dash := &domain.Dashboard{
		Metrics:    &domain.Metrics{TotalCount: 2, CapitalTotalDisplay: "$2.00M"},
		RecordPage: domain.RecordPage{Rows: []domain.Record{}, Total: 2},
	}
	criteria := domain.FilterCriteria{
		Regions: []string{"SIERRA"},
		Capital: &domain.CapitalRange{Min: domain.Float64(100)},
	}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		page   domain.Page
	}{
		{
			name:   "query string",
			method: http.MethodGet,
			target: "/api/dashboard?region=SIERRA&capital_min=100&limit=10",
			page:   domain.Page{Limit: 10},
		},
		{
			name:   "json body",
			method: http.MethodPost,
			target: "/api/dashboard",
			body:   `{"regions":["SIERRA"],"capital":{"min":100},"show_all":true}`,
			page:   domain.Page{ShowAll: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			svc.On("Evaluate", mock.Anything, criteria, tt.page).Return(dash, nil)

			rec := serve(t, newTestRouter(t, svc), tt.method, tt.target, tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, false, got["empty"])
			assert.Equal(t, float64(2), got["total"])
			assert.Equal(t, "$2.00M", got["metrics"].(map[string]interface{})["capital_total_display"])
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_PostDashboardEmptyBody(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Evaluate", mock.Anything, domain.FilterCriteria{}, domain.Page{}).
		Return(&domain.Dashboard{Empty: true, Message: domain.EmptyResultMessage, RecordPage: domain.RecordPage{Rows: []domain.Record{}}}, nil)

	rec := serve(t, newTestRouter(t, svc), http.MethodPost, "/api/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No hay registros")
}

func TestDashboardHandler_Errors(t *testing.T) {
	validationErr := &services.ValidationError{Fields: []services.FieldError{{Field: "limit", Tag: "gte", Message: "limit must be at least 0"}}}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		setup      func(*mockDashboardService)
		wantStatus int
		wantType   string
	}{
		{
			name:       "unparseable query",
			method:     http.MethodGet,
			target:     "/api/dashboard?year_min=abc",
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			target:     "/api/dashboard",
			body:       `{"regions":`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "invalid criteria",
			method: http.MethodGet,
			target: "/api/records?limit=-1",
			setup: func(m *mockDashboardService) {
				m.On("Records", mock.Anything, mock.Anything, domain.Page{Limit: -1}).Return(domain.RecordPage{}, validationErr)
			},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeInvalidCriteria,
		},
		{
			name:   "registry not loaded",
			method: http.MethodGet,
			target: "/api/options",
			setup: func(m *mockDashboardService) {
				m.On("Options", mock.Anything, []string(nil)).Return(domain.FilterOptions{}, services.ErrNotLoaded)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantType:   apierrors.TypeDataNotLoaded,
		},
		{
			name:       "unknown chart",
			method:     http.MethodGet,
			target:     "/api/charts/radar",
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeUnknownChart,
		},
		{
			name:       "unsupported chart format",
			method:     http.MethodGet,
			target:     "/api/charts/types?format=gif",
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeChartFormat,
		},
		{
			name:   "export failure",
			method: http.MethodGet,
			target: "/api/export.csv",
			setup: func(m *mockDashboardService) {
				m.On("ExportCSV", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", 0, fmt.Errorf("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   apierrors.TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := serve(t, newTestRouter(t, svc), tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, problemType(t, rec))
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetRecords(t *testing.T) {
	svc := new(mockDashboardService)
	page := domain.RecordPage{
		Rows:      []domain.Record{{Name: "ALFA S.A."}},
		RowCount:  1,
		Total:     3,
		Truncated: true,
	}
	svc.On("Records", mock.Anything, domain.FilterCriteria{NameQuery: "alfa"}, domain.Page{Limit: 1}).Return(page, nil)

	rec := serve(t, newTestRouter(t, svc), http.MethodGet, "/api/records?q=alfa&limit=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.RecordPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.True(t, got.Truncated)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "ALFA S.A.", got.Rows[0].Name)
}

func TestDashboardHandler_ExportCSV(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantBOM bool
	}{
		{name: "plain", target: "/api/export.csv?balance=SI"},
		{name: "with bom", target: "/api/export.csv?balance=SI&bom=true", wantBOM: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			svc.On("ExportCSV", mock.Anything, domain.FilterCriteria{BalanceFiled: "SI"}, mock.Anything, exporter.WriteOptions{BOMPrefix: tt.wantBOM}).
				Return("Nombre\nALFA\n", 1, nil)

			rec := serve(t, newTestRouter(t, svc), http.MethodGet, tt.target, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="directorio_filtrado.csv"`, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "1", rec.Header().Get("X-Record-Count"))
			assert.Equal(t, "Nombre\nALFA\n", rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetChart(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		kind        domain.ChartKind
		format      exporter.Format
		body        string
		err         error
		wantStatus  int
		wantType    string
		wantPayload string
	}{
		{
			name:        "png by default",
			target:      "/api/charts/industries?region=COSTA",
			kind:        domain.ChartIndustries,
			format:      exporter.FormatPNG,
			body:        "\x89PNG",
			wantStatus:  http.StatusOK,
			wantType:    "image/png",
			wantPayload: "\x89PNG",
		},
		{
			name:        "svg on request",
			target:      "/api/charts/legal-status?region=COSTA&format=svg",
			kind:        domain.ChartLegalStatus,
			format:      exporter.FormatSVG,
			body:        "<svg/>",
			wantStatus:  http.StatusOK,
			wantType:    "image/svg+xml",
			wantPayload: "<svg/>",
		},
		{
			name:       "empty view",
			target:     "/api/charts/capital-histogram?region=COSTA",
			kind:       domain.ChartCapitalHistogram,
			format:     exporter.FormatPNG,
			err:        fmt.Errorf("render: %w", services.ErrEmptyChart),
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			svc.On("RenderChart", mock.Anything, domain.FilterCriteria{Regions: []string{"COSTA"}}, tt.kind, tt.format, mock.Anything).
				Return(tt.body, tt.err)

			rec := serve(t, newTestRouter(t, svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			assert.Equal(t, tt.wantPayload, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
