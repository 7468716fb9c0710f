package errors

import (
	"errors"
	"fmt"

	"registrydash/internal/dataprocessing"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFileNotFound ErrorType = "FILE_NOT_FOUND"
	ErrTypeSchema       ErrorType = "SCHEMA"
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// LoadFailurePrefix starts the message shown when the registry cannot be loaded.
const LoadFailurePrefix = "No se pudo cargar el archivo de datos"

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown to an operator, without the type tag.
func (e *AppError) UserMessage() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// ClassifyLoadError tags a registry load failure with its type. The message
// is the one shown to the operator when start-up aborts.
func ClassifyLoadError(path string, err error) *AppError {
	var appErr *AppError
	switch {
	case errors.Is(err, dataprocessing.ErrFileNotFound):
		appErr = NewAppError(ErrTypeFileNotFound, LoadFailurePrefix, err)
	case dataprocessing.IsSchemaError(err):
		appErr = NewAppError(ErrTypeSchema, LoadFailurePrefix, err)
	case errors.Is(err, dataprocessing.ErrUnsupportedFormat), errors.Is(err, dataprocessing.ErrEmptySheet):
		appErr = NewParsingError(LoadFailurePrefix, err)
	default:
		appErr = NewStorageError(LoadFailurePrefix, err)
	}
	return appErr.WithContext("path", path)
}
