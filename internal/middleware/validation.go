package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apierrors "registrydash/internal/errors"
	"registrydash/internal/infrastructure"
)

// DefaultMaxBodySize caps request bodies accepted by the API.
const DefaultMaxBodySize int64 = 1 << 20

// ValidationMiddleware checks request bodies before they reach handlers
type ValidationMiddleware struct {
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxBodySize  int64
}

// NewValidationMiddleware creates a new validation middleware.
// A non-positive maxBodySize selects DefaultMaxBodySize.
func NewValidationMiddleware(logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxBodySize int64) *ValidationMiddleware {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &ValidationMiddleware{
		logger:       infrastructure.WithComponent(logger, "validation_middleware"),
		errorHandler: errorHandler,
		maxBodySize:  maxBodySize,
	}
}

// ValidateRequest rejects oversized bodies and bodies that are not valid JSON
func (m *ValidationMiddleware) ValidateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > m.maxBodySize {
			m.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}

		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, m.maxBodySize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				m.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
				return
			}
			m.logger.ErrorContext(r.Context(), "failed to read request body",
				slog.String("error", err.Error()),
				slog.String("request_id", GetRequestID(r.Context())),
			)
			m.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}

		if len(body) > 0 && !json.Valid(body) {
			m.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusBadRequest,
				"INVALID_JSON",
				"Request body contains invalid JSON",
			))
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// ContentTypeValidator ensures requests with a body declare an accepted content type
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				_ = ProblemFromStatus(http.StatusBadRequest,
					"Content-Type header is required",
					GetRequestID(r.Context()),
				).Render(w, r)
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(strings.ToLower(contentType), allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			_ = ProblemFromStatus(http.StatusUnsupportedMediaType,
				"Unsupported content type "+contentType+"; expected "+strings.Join(contentTypes, ", "),
				GetRequestID(r.Context()),
			).Render(w, r)
		})
	}
}
