package errors

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"registrydash/internal/infrastructure"
)

// maxLoggedBody bounds the request body kept for failure logs
const maxLoggedBody = 500

// ErrorMiddleware recovers panics and logs failed requests with their payload
type ErrorMiddleware struct {
	handler *ErrorHandler
	logger  *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(handler *ErrorHandler, logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		handler: handler,
		logger:  infrastructure.WithComponent(logger, "error_middleware"),
	}
}

// Handler returns the middleware handler function
func (m *ErrorMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		// Keep small bodies so a failed POST can be diagnosed from the log.
		var requestBody []byte
		if r.Body != nil && r.ContentLength > 0 && r.ContentLength < 1<<20 {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		start := time.Now()

		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				m.handler.HandlePanic(ww, r, rvr)
			}
			m.logFailure(r, ww.Status(), time.Since(start), requestBody)
		}()

		next.ServeHTTP(ww, r)
	})
}

// logFailure records requests that ended with a 4xx or 5xx status
func (m *ErrorMiddleware) logFailure(r *http.Request, status int, duration time.Duration, requestBody []byte) {
	if status < http.StatusBadRequest {
		return
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
		slog.String("request_id", requestID(r)),
	}
	if r.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", r.URL.RawQuery))
	}
	if len(requestBody) > 0 {
		body := sanitizeRequestBody(string(requestBody))
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody] + "..."
		}
		attrs = append(attrs, slog.String("request_body", body))
	}

	m.logger.LogAttrs(r.Context(), level, "http request failed", attrs...)
}

// sanitizeRequestBody redacts credential-like fields from a JSON body
func sanitizeRequestBody(body string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return body
	}

	for _, field := range []string{"password", "token", "secret", "api_key", "apiKey", "authorization"} {
		if _, exists := data[field]; exists {
			data[field] = "[REDACTED]"
		}
	}

	sanitized, err := json.Marshal(data)
	if err != nil {
		return body
	}
	return string(sanitized)
}
