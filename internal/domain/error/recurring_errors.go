// Package error defines domain-specific errors for the Budgetly application.
package error

import "errors"

// Recurring transaction domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring definition is not found.
	ErrRecurringNotFound = errors.New("recurring transaction not found")

	// ErrInvalidFrequency is returned when the frequency is not one of
	// daily, weekly, monthly, yearly.
	ErrInvalidFrequency = errors.New("invalid recurring frequency")

	// ErrMissingDayOfMonth is returned when a monthly definition has no day of month.
	ErrMissingDayOfMonth = errors.New("day of month is required for monthly frequency")

	// ErrInvalidDayOfMonth is returned when day of month is outside [1,31].
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrMissingDayOfWeek is returned when a weekly definition has no day of week.
	ErrMissingDayOfWeek = errors.New("day of week is required for weekly frequency")

	// ErrInvalidRecurringAmount is returned when the amount is zero or negative.
	ErrInvalidRecurringAmount = errors.New("invalid recurring amount")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrUnauthorizedRecurringAccess is returned when user is not authorized
	// to access a recurring definition.
	ErrUnauthorizedRecurringAccess = errors.New("unauthorized access to recurring transaction")

	// ErrStaleWatermark is returned when a conditional watermark update
	// matched no row, meaning another instance already generated past it.
	ErrStaleWatermark = errors.New("recurring watermark already advanced")
)

// RecurringErrorCode defines error codes for recurring transaction errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecurringNotFound           RecurringErrorCode = "REC-010001"
	ErrCodeInvalidFrequency            RecurringErrorCode = "REC-010002"
	ErrCodeMissingDayOfMonth           RecurringErrorCode = "REC-010003"
	ErrCodeInvalidDayOfMonth           RecurringErrorCode = "REC-010004"
	ErrCodeMissingDayOfWeek            RecurringErrorCode = "REC-010005"
	ErrCodeInvalidRecurringAmount      RecurringErrorCode = "REC-010006"
	ErrCodeInvalidRecurringDateRange   RecurringErrorCode = "REC-010007"
	ErrCodeUnauthorizedRecurringAccess RecurringErrorCode = "REC-010008"
	ErrCodeMissingRecurringFields      RecurringErrorCode = "REC-010009"
	ErrCodeRecurringCategoryNotFound   RecurringErrorCode = "REC-010010"

	// Generation errors (02XXXX)
	ErrCodeStaleWatermark RecurringErrorCode = "REC-020001"
)

// RecurringError represents a recurring transaction error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
