package validator

import (
	"regexp"
	"strings"

	"work-exchange-api/core/controller"
	"work-exchange-api/core/errors"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidationResult collects field errors; the first one is surfaced as the
// AppError message.
type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func New() *ValidationResult {
	return &ValidationResult{}
}

func (v *ValidationResult) AddError(field, message string) {
	v.Errors = append(v.Errors, controller.NewValidationError(field, message))
}

func (v *ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}

// Required adds an error when value is blank.
func (v *ValidationResult) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, field+" is required")
		return false
	}
	return true
}

// Month checks the YYYY-MM format.
func (v *ValidationResult) Month(field, value string) bool {
	if !IsMonth(value) {
		v.AddError(field, field+" must be a month in YYYY-MM format")
		return false
	}
	return true
}

// AppError converts the first collected error into a field error carrying
// code, or nil when nothing failed.
func (v *ValidationResult) AppError(code errors.ErrorCode) *errors.AppError {
	if !v.HasError() {
		return nil
	}
	first := v.Errors[0]
	return errors.NewFieldError(code, first.Field, first.Message)
}

func IsMonth(value string) bool {
	return monthPattern.MatchString(value)
}
