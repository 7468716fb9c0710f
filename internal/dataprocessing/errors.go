package dataprocessing

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the source workbook does not exist.
	ErrFileNotFound = errors.New("data file not found")

	// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
	ErrUnsupportedFormat = errors.New("unsupported data file format")

	// ErrEmptySheet is returned when the sheet has no header row.
	ErrEmptySheet = errors.New("sheet has no header row")
)

// SchemaError reports a column the normalizer cannot do without.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error: required column missing after rename: %q", e.Column)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
