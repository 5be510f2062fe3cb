// Package error defines domain-specific errors for the Budgetly application.
package error

import "errors"

// Report domain errors.
var (
	// ErrMissingStartDate is returned when a report request has no start date.
	ErrMissingStartDate = errors.New("start date is required")

	// ErrMissingEndDate is returned when a report request has no end date.
	ErrMissingEndDate = errors.New("end date is required")

	// ErrInvalidReportRange is returned when the end date precedes the start date.
	ErrInvalidReportRange = errors.New("end date must be after start date")

	// ErrReportRenderFailed is returned when a document export fails to render.
	ErrReportRenderFailed = errors.New("failed to render report document")

	// ErrInsightsUnavailable is returned when the AI insight service is not configured.
	ErrInsightsUnavailable = errors.New("insight service is not available")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	ErrCodeMissingStartDate    ReportErrorCode = "RPT-010001"
	ErrCodeMissingEndDate      ReportErrorCode = "RPT-010002"
	ErrCodeInvalidReportRange  ReportErrorCode = "RPT-010003"
	ErrCodeReportRenderFailed  ReportErrorCode = "RPT-020001"
	ErrCodeInsightsUnavailable ReportErrorCode = "RPT-030001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
