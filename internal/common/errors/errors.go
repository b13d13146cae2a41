// Package errors provides the standardized failure vocabulary shared by the
// orchestrator, the HTTP API and the Zeebe workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode identifies a terminal failure of a query.
type ErrorCode string

const (
	ErrCodeNoLocation                   ErrorCode = "NO_LOCATION"
	ErrCodePlaceNotFound                ErrorCode = "PLACE_NOT_FOUND"
	ErrCodePlaceNotFoundWithSuggestions ErrorCode = "PLACE_NOT_FOUND_WITH_SUGGESTIONS"
	ErrCodeGeocodingUnavailable         ErrorCode = "GEOCODING_UNAVAILABLE"
	ErrCodeWeatherUnavailable           ErrorCode = "WEATHER_UNAVAILABLE"
	ErrCodePlacesUnavailable            ErrorCode = "PLACES_UNAVAILABLE"
	ErrCodePartialSubLookupFailure      ErrorCode = "PARTIAL_SUB_LOOKUP_FAILURE"
	ErrCodeCancelled                    ErrorCode = "CANCELLED"
	ErrCodeInputValidationFailed        ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeInternal                     ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors returned by the collaborator clients. Callers match them
// with errors.Is; the clients wrap them with request context.
var (
	ErrPlaceNotFound        = stderrors.New("PLACE_NOT_FOUND")
	ErrGeocodingUnavailable = stderrors.New("GEOCODING_UNAVAILABLE")
	ErrWeatherUnavailable   = stderrors.New("WEATHER_UNAVAILABLE")
	ErrPlacesUnavailable    = stderrors.New("PLACES_UNAVAILABLE")
)

// StandardError is a structured terminal failure. Message is safe to show
// to the person who asked the question.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is the shape thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the job variables attached to a failed or thrown job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: code == ErrCodeGeocodingUnavailable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func NewNoLocationError(message string) *StandardError {
	return newError(ErrCodeNoLocation, message, nil)
}

// NewPlaceNotFoundError reports an unknown location with no spelling hints.
func NewPlaceNotFoundError(location, message string, cause error) *StandardError {
	e := newError(ErrCodePlaceNotFound, message, cause)
	e.Metadata = map[string]interface{}{"location": location}
	return e
}

// NewPlaceNotFoundWithSuggestionsError reports an unknown location together
// with the gazetteer's spelling suggestions, best first.
func NewPlaceNotFoundWithSuggestionsError(location string, suggestions []string, message string, cause error) *StandardError {
	e := newError(ErrCodePlaceNotFoundWithSuggestions, message, cause)
	e.Metadata = map[string]interface{}{
		"location":    location,
		"suggestions": suggestions,
	}
	return e
}

// NewGeocodingUnavailableError is the only retryable failure.
func NewGeocodingUnavailableError(location, message string, cause error) *StandardError {
	e := newError(ErrCodeGeocodingUnavailable, message, cause)
	e.Metadata = map[string]interface{}{"location": location}
	return e
}

func NewCancelledError(cause error) *StandardError {
	return newError(ErrCodeCancelled, "The request was cancelled before an answer was ready.", cause)
}

func NewInputValidationFailedError(details string) *StandardError {
	e := newError(ErrCodeInputValidationFailed, "Input validation failed", nil)
	e.Details = details
	return e
}

func NewInternalError(cause error) *StandardError {
	return newError(ErrCodeInternal, "Something went wrong while answering your question. Please try again.", cause)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns how many job retries a code is worth.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeGeocodingUnavailable:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if s, ok := stdErr.Metadata["suggestions"]; ok {
		vars["suggestions"] = s
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a *StandardError if one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the code of err, INTERNAL_ERROR for foreign errors and
// the empty code for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for dashboards and logs.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "LOCATION") || strings.Contains(codeStr, "PLACE_NOT_FOUND"):
		return "LOCATION"
	case strings.HasSuffix(codeStr, "_UNAVAILABLE") || strings.Contains(codeStr, "SUB_LOOKUP"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case code == ErrCodeCancelled:
		return "CANCELLATION"
	default:
		return "INTERNAL"
	}
}
