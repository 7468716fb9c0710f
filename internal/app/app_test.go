package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrydash/internal/config"
	apierrors "registrydash/internal/errors"
	"registrydash/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.File = testutil.WriteWorkbook(t, testutil.SourceHeaders, []testutil.SourceRow{
		testutil.CompanyRow("ALFA S.A.", "SIERRA", "PICHINCHA", 1000.0, "15/01/2010"),
		testutil.CompanyRow("BETA CIA. LTDA.", "COSTA", "GUAYAS", 2500.0, "03/06/1999"),
		testutil.CompanyRow("GAMMA S.A.", "COSTA", "MANABI", 0.0, nil),
	})
	cfg.Data.Sheet = testutil.FixtureSheet
	cfg.Security.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 5 * time.Second
	return cfg
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplication(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	return app
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
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

func TestNewApplication_Routes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{"ready", http.MethodGet, "/api/health/ready", "", http.StatusOK, "application/json", `"ready"`},
		{"options", http.MethodGet, "/api/options?region=COSTA", "", http.StatusOK, "application/json", `"GUAYAS"`},
		{"dashboard get", http.MethodGet, "/api/dashboard?region=COSTA", "", http.StatusOK, "application/json", `"total":2`},
		{"dashboard post", http.MethodPost, "/api/dashboard", `{"regions":["SIERRA"]}`, http.StatusOK, "application/json", `"ALFA S.A."`},
		{"empty dashboard", http.MethodGet, "/api/dashboard?region=ORIENTE", "", http.StatusOK, "application/json", "No hay registros"},
		{"records", http.MethodGet, "/api/records?limit=1", "", http.StatusOK, "application/json", `"truncated":true`},
		{"export", http.MethodGet, "/api/export.csv?q=beta", "", http.StatusOK, "text/csv; charset=utf-8", "BETA CIA. LTDA."},
		{"chart", http.MethodGet, "/api/charts/provinces?format=svg", "", http.StatusOK, "image/svg+xml", "<svg"},
		{"empty chart", http.MethodGet, "/api/charts/top-capital?region=ORIENTE", "", http.StatusNoContent, "", ""},
		{"unknown chart", http.MethodGet, "/api/charts/radar", "", http.StatusNotFound, apierrors.ContentType, "/errors/chart/unknown"},
		{"invalid criteria", http.MethodGet, "/api/records?capital_min=5&capital_max=1", "", http.StatusBadRequest, apierrors.ContentType, "capital.max"},
		{"bad json", http.MethodPost, "/api/dashboard", `{"regions":`, http.StatusBadRequest, apierrors.ContentType, "INVALID_JSON"},
		{"not found", http.MethodGet, "/nope", "", http.StatusNotFound, apierrors.ContentType, "/errors/not-found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app.Router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			assert.Contains(t, rec.Body.String(), tt.wantContain)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestNewApplication_MetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, do(t, app.Router, http.MethodGet, "/api/dashboard", "").Code)

	rec := do(t, app.Router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "registry_filter_evaluations_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestNewApplication_MissingDataFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.File = filepath.Join(t.TempDir(), "missing.xlsx")
	logger, _ := testutil.NewTestLogger(t)

	_, err := NewApplication(context.Background(), cfg, logger)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeFileNotFound, appErr.Type)
	assert.True(t, strings.HasPrefix(appErr.UserMessage(), apierrors.LoadFailurePrefix))
}

func TestApplication_ServeAndStop(t *testing.T) {
	app := newTestApp(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/api/health/live")
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "alive", body["status"])

	require.NoError(t, app.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
