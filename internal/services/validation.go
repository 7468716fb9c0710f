package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"registrydash/pkg/contracts/domain"
)

// CriteriaValidator checks FilterCriteria and Page against their struct tags
// and the ordering of range bounds.
type CriteriaValidator struct {
	validate *validator.Validate
}

// NewCriteriaValidator creates a validator reporting JSON field names.
func NewCriteriaValidator() *CriteriaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(capitalRangeOrder, domain.CapitalRange{})
	v.RegisterStructValidation(yearRangeOrder, domain.YearRange{})

	return &CriteriaValidator{validate: v}
}

func capitalRangeOrder(sl validator.StructLevel) {
	r := sl.Current().Interface().(domain.CapitalRange)
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		sl.ReportError(r.Max, "max", "Max", "gtefield", "min")
	}
}

func yearRangeOrder(sl validator.StructLevel) {
	r := sl.Current().Interface().(domain.YearRange)
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		sl.ReportError(r.Max, "max", "Max", "gtefield", "min")
	}
}

// Validate returns a *ValidationError when c or p is rejected.
func (v *CriteriaValidator) Validate(c domain.FilterCriteria, p domain.Page) error {
	var fields []FieldError
	for _, target := range []interface{}{c, p} {
		err := v.validate.Struct(target)
		if err == nil {
			continue
		}
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Tag:     fe.Tag(),
				Message: formatFieldError(fe),
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be lower than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
