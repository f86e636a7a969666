// Package common provides shared utilities used across all features
package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

// HttpError represents an HTTP error with status code and message
type HttpError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s %s", e.StatusCode, e.Code, e.Message)
}

func messageOrDefault(msg string, defaultMsg string) string {
	if msg != "" {
		return msg
	}
	return defaultMsg
}

// HTTP Error constructors

func HTTPErrorBadRequest(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    messageOrDefault(msg, "Bad request"),
	}
}

func HTTPErrorValidation(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    messageOrDefault(msg, "Invalid split request"),
	}
}

func HTTPErrorTotalMismatch(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "TOTAL_MISMATCH",
		Message:    messageOrDefault(msg, "Split total does not match amount"),
	}
}

func HTTPErrorCalculation(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusInternalServerError,
		Code:       "CALCULATION_ERROR",
		Message:    messageOrDefault(msg, "Calculation error"),
	}
}

func HTTPErrorNotFound(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    messageOrDefault(msg, "Not found"),
	}
}

func HTTPErrorInternalError(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    messageOrDefault(msg, "Internal server error"),
	}
}

// HTTPErrorFromSplit maps a split engine error to its HTTP form. The core
// message is passed through unchanged.
func HTTPErrorFromSplit(err error) *HttpError {
	var httpErr *HttpError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, splitter.ErrValidation):
		return HTTPErrorValidation(err.Error())
	case errors.Is(err, splitter.ErrTotalMismatch):
		return HTTPErrorTotalMismatch(err.Error())
	case errors.Is(err, splitter.ErrCalculation):
		return HTTPErrorCalculation(err.Error())
	}
	return HTTPErrorInternalError(err.Error())
}
