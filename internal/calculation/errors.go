package calculation

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every ValidationError; match with errors.Is.
var ErrValidation = errors.New("invalid calculation request")

// ValidationCode classifies a rejected request
type ValidationCode string

const (
	CodeNonPositivePrincipal    ValidationCode = "non_positive_principal"
	CodeUnsupportedYearBasis    ValidationCode = "unsupported_year_basis"
	CodeMissingRegime           ValidationCode = "missing_regime"
	CodeInvalidRegime           ValidationCode = "invalid_regime"
	CodeInvalidAdjustment       ValidationCode = "invalid_adjustment"
	CodeMissingDate             ValidationCode = "missing_date"
	CodeConflictingRange        ValidationCode = "conflicting_range"
	CodeInvertedRange           ValidationCode = "inverted_range"
	CodeRangeTooLong            ValidationCode = "range_too_long"
	CodeInvalidBoundaryMode     ValidationCode = "invalid_boundary_mode"
	CodeBoundaryModeUnsupported ValidationCode = "boundary_mode_unsupported"
	CodeBeforeBenchmarkFloor    ValidationCode = "before_benchmark_floor"
	CodeBeforeLPRFloor          ValidationCode = "before_lpr_floor"
	CodeBeforePenaltyFloor      ValidationCode = "before_penalty_floor"
)

// ValidationError is a user-facing rejection of a request. No part of the
// calculation runs once one is produced.
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Field   string         `json:"field"`
	Message string         `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(code ValidationCode, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
