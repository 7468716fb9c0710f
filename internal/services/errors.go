package services

import (
	"errors"
	"fmt"
	"strings"

	"registrydash/internal/exporter"
	"registrydash/pkg/contracts/domain"
)

// Dashboard service errors
var (
	ErrInvalidCriteria = errors.New("invalid filter criteria")
	ErrNotLoaded       = errors.New("registry not loaded")

	// Chart errors share identity with the packages that raise them.
	ErrUnknownChart = domain.ErrUnknownChartKind
	ErrEmptyChart   = exporter.ErrEmptyChart
)

// FieldError describes one rejected criteria field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field. It matches ErrInvalidCriteria.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidCriteria, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCriteria
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
