package splitter

import (
	"errors"
	"fmt"

	"github.com/hxuan190/fairsplit/internal/domain"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrCalculation   = errors.New("calculation error")
	ErrTotalMismatch = errors.New("total mismatch")
)

// ValidationError rejects malformed input before any arithmetic runs.
type ValidationError struct {
	Field   string
	Message string
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CalculationError wraps a failure raised while shares were being computed.
type CalculationError struct {
	Cause error
}

func (e *CalculationError) Error() string {
	return "Calculation error: " + e.Cause.Error()
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

func (e *CalculationError) Is(target error) bool {
	return target == ErrCalculation
}

// TotalMismatchError means the rounded shares do not add up to the rounded
// input amount.
type TotalMismatchError struct {
	Expected  float64
	Actual    float64
	Currency  string
	precision int
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("Total mismatch: expected %.*f, got %.*f", e.precision, e.Expected, e.precision, e.Actual)
}

func (e *TotalMismatchError) Is(target error) bool {
	return target == ErrTotalMismatch
}

// recoverCalculation converts a panic in a split algorithm into a
// CalculationError. It must be deferred directly by the algorithm.
func recoverCalculation(result **domain.SplitResult, err *error) {
	r := recover()
	if r == nil {
		return
	}
	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = fmt.Errorf("%v", v)
	}
	*result = nil
	*err = &CalculationError{Cause: cause}
}
