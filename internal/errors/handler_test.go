package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrydash/internal/dataprocessing"
	"registrydash/internal/exporter"
	"registrydash/internal/infrastructure"
	"registrydash/internal/services"
	"registrydash/internal/shared/testutil"
	"registrydash/pkg/contracts/domain"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	_, unknownErr := domain.ParseChartKind("radar")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"cancelled", fmt.Errorf("evaluate: %w", context.Canceled), http.StatusGatewayTimeout, TypeTimeout},
		{"validation error", &services.ValidationError{Fields: []services.FieldError{{Field: "limit", Tag: "min", Message: "limit must be at least 1"}}}, http.StatusBadRequest, TypeInvalidCriteria},
		{"bare invalid criteria", fmt.Errorf("wrap: %w", services.ErrInvalidCriteria), http.StatusBadRequest, TypeInvalidCriteria},
		{"api error", InvalidParameter("capital_min", "abc"), http.StatusBadRequest, TypeValidation},
		{"payload too large", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, TypePayloadTooLarge},
		{"app validation", NewAppValidationError("bad"), http.StatusBadRequest, TypeValidation},
		{"unknown chart", unknownErr, http.StatusNotFound, TypeUnknownChart},
		{"empty chart", fmt.Errorf("render: %w", exporter.ErrEmptyChart), http.StatusNotFound, TypeEmptyChart},
		{"unsupported format", exporter.ErrUnsupportedFormat, http.StatusBadRequest, TypeChartFormat},
		{"not loaded", services.ErrNotLoaded, http.StatusServiceUnavailable, TypeDataNotLoaded},
		{"file missing", ClassifyLoadError("x.xlsx", dataprocessing.ErrFileNotFound), http.StatusServiceUnavailable, TypeDataNotFound},
		{"schema", &dataprocessing.SchemaError{Column: "CAPITAL SUSCRITO"}, http.StatusInternalServerError, TypeDataCorrupted},
		{"empty sheet", dataprocessing.ErrEmptySheet, http.StatusInternalServerError, TypeDataCorrupted},
		{"anything else", fmt.Errorf("boom"), http.StatusInternalServerError, TypeInternal},
	}

	h := NewErrorHandler(nil, false)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/dashboard", p.Instance)
		})
	}
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		stack      bool
		wantStatus int
		wantLevel  slog.Level
		wantStack  bool
	}{
		{name: "client error logs warn", err: services.ErrInvalidCriteria, wantStatus: http.StatusBadRequest, wantLevel: slog.LevelWarn},
		{name: "server error logs error", err: fmt.Errorf("disk"), wantStatus: http.StatusInternalServerError, wantLevel: slog.LevelError},
		{name: "stack only on 5xx", err: fmt.Errorf("disk"), stack: true, wantStatus: http.StatusInternalServerError, wantLevel: slog.LevelError, wantStack: true},
		{name: "no stack on 4xx", err: services.ErrInvalidCriteria, stack: true, wantStatus: http.StatusBadRequest, wantLevel: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, tt.stack)

			req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "req-1"))
			rec := httptest.NewRecorder()
			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))

			body := decodeBody(t, rec)
			assert.Equal(t, "req-1", body["trace_id"])
			_, hasStack := body["stack"]
			assert.Equal(t, tt.wantStack, hasStack)

			testutil.AssertLogContains(t, logs, tt.wantLevel, "request failed")
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorHandler(nil, false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorHandler_ValidationFieldsExtension(t *testing.T) {
	err := &services.ValidationError{Fields: []services.FieldError{
		{Field: "capital.max", Tag: "gtefield", Message: "capital.max must be greater than or equal to capital.min"},
		{Field: "limit", Tag: "min", Message: "limit must be at least 1"},
	}}

	rec := httptest.NewRecorder()
	NewErrorHandler(nil, false).HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard", nil), err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "capital.max", fields[0].(map[string]interface{})["field"])
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	tests := []struct {
		name      string
		stack     bool
		wantPanic bool
	}{
		{"production hides panic", false, false},
		{"development shows panic", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			rec := httptest.NewRecorder()
			NewErrorHandler(logger, tt.stack).HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/api/options", nil), "nil map")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeBody(t, rec)
			_, hasPanic := body["panic"]
			assert.Equal(t, tt.wantPanic, hasPanic)
			testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
		})
	}
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewErrorHandler(nil, false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeBody(t, rec)["type"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/options", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "DELETE")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusNotFound, TypeUnknownChart, "Unknown Chart", "radar", "/api/charts/radar").
		WithExtension("status", 999).
		WithExtension("trace_id", "abc")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Equal(t, "abc", body["trace_id"])
	assert.Equal(t, "/api/charts/radar", body["instance"])
}
