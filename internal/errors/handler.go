package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/render"

	"registrydash/internal/dataprocessing"
	"registrydash/internal/exporter"
	"registrydash/internal/infrastructure"
	"registrydash/internal/services"
)

// Common error types following RFC 7807
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeServiceDown      = "/errors/service-unavailable"
	TypeTimeout          = "/errors/timeout"
	TypePayloadTooLarge  = "/errors/payload-too-large"
	TypeMethodNotAllowed = "/errors/method-not-allowed"
)

// Domain-specific error types
const (
	TypeInvalidCriteria = "/errors/criteria/invalid"
	TypeUnknownChart    = "/errors/chart/unknown"
	TypeEmptyChart      = "/errors/chart/empty"
	TypeChartFormat     = "/errors/chart/unsupported-format"
	TypeDataNotFound    = "/errors/data/not-found"
	TypeDataCorrupted   = "/errors/data/corrupted"
	TypeDataNotLoaded   = "/errors/data/not-loaded"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       infrastructure.WithComponent(logger, "error_handler"),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := requestID(r)
	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	// Add stack trace in development
	if h.includeStack && problem.Status >= http.StatusInternalServerError {
		problem.WithExtension("stack", getStackTrace())
	}

	_ = problem.Write(w)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	path := r.URL.Path

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			path,
		)
	}

	if ve, ok := services.AsValidationError(err); ok {
		fields := make([]ValidationError, len(ve.Fields))
		for i, f := range ve.Fields {
			fields[i] = ValidationError{Field: f.Field, Message: f.Message}
		}
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeInvalidCriteria,
			"Invalid Filter Criteria",
			"One or more filter criteria are invalid",
			path,
		).WithExtension("errors", fields)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Type == ErrTypeValidation {
		return NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", appErr.Message, path)
	}

	switch {
	case errors.Is(err, services.ErrInvalidCriteria):
		return NewProblemDetails(http.StatusBadRequest, TypeInvalidCriteria, "Invalid Filter Criteria", err.Error(), path)

	case errors.Is(err, services.ErrUnknownChart):
		return NewProblemDetails(http.StatusNotFound, TypeUnknownChart, "Unknown Chart", err.Error(), path)

	case errors.Is(err, services.ErrEmptyChart):
		return NewProblemDetails(http.StatusNotFound, TypeEmptyChart, "Empty Chart", err.Error(), path)

	case errors.Is(err, exporter.ErrUnsupportedFormat):
		return NewProblemDetails(http.StatusBadRequest, TypeChartFormat, "Unsupported Chart Format", err.Error(), path)

	case errors.Is(err, services.ErrNotLoaded):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeDataNotLoaded,
			"Registry Not Loaded",
			"The company registry is not available yet",
			path,
		)

	case errors.Is(err, dataprocessing.ErrFileNotFound):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeDataNotFound,
			"Registry File Not Found",
			"The company registry file could not be found",
			path,
		)

	case dataprocessing.IsSchemaError(err),
		errors.Is(err, dataprocessing.ErrEmptySheet),
		errors.Is(err, dataprocessing.ErrUnsupportedFormat):
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeDataCorrupted,
			"Registry Data Corrupted",
			"The company registry file does not have the expected layout",
			path,
		)

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request",
			path,
		)
	}
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST", "INVALID_PARAMETER":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "PAYLOAD_TOO_LARGE":
		problemType = TypePayloadTooLarge
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	case "SERVICE_UNAVAILABLE":
		problemType = TypeServiceDown
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := requestID(r)

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	// Add panic details in development
	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	_ = problem.Write(w)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", requestID(r))

	_ = problem.Write(w)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethodNotAllowed,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", requestID(r))

	_ = problem.Write(w)
}

// requestID returns the correlation ID set by the request middleware
func requestID(r *http.Request) string {
	return infrastructure.GetTraceID(r.Context())
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// JSON helper for consistent JSON responses
func (h *ErrorHandler) JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
