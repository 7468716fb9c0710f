package errors

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"registrydash/internal/shared/testutil"
)

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		handler    http.HandlerFunc
		wantStatus int
		wantLog    bool
		wantLevel  slog.Level
	}{
		{
			name:       "success is not logged",
			handler:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "client error logged as warn",
			body:       `{"limit":0}`,
			handler:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) },
			wantStatus: http.StatusBadRequest,
			wantLog:    true,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "panic recovered as 500",
			handler:    func(http.ResponseWriter, *http.Request) { panic("boom") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    true,
			wantLevel:  slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

			req := httptest.NewRequest(http.MethodPost, "/api/dashboard?x=1", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			m.Handler(tt.handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLog, logs.ContainsMessage("http request failed"))
			if tt.wantLog {
				testutil.AssertLogContains(t, logs, tt.wantLevel, "http request failed")
			}
			if tt.body != "" && tt.wantLog {
				assert.True(t, logs.ContainsAttr("request_body", tt.body))
			}
		})
	}
}

func TestSanitizeRequestBody(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"redacts token", `{"q":"acme","token":"s3cr3t"}`, `{"q":"acme","token":"[REDACTED]"}`},
		{"leaves criteria", `{"regions":["SIERRA"]}`, `{"regions":["SIERRA"]}`},
		{"non json unchanged", "region=SIERRA", "region=SIERRA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeRequestBody(tt.in))
		})
	}
}
