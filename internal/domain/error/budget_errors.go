// Package error defines domain-specific errors for the Budgetly application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the
	// same (category, month, year).
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and period")

	// ErrInvalidBudgetAmount is returned when the budget amount is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidBudgetPeriod is returned when month or year is out of range.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrBudgetCategoryNotFound is returned when the category for a budget is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotOwned is returned when the category does not belong to the user.
	ErrBudgetCategoryNotOwned = errors.New("category does not belong to user")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")

	// ErrStaleBudgetUpdate is returned when a conditional alert-flag update
	// matched no row, meaning another instance already advanced the flag.
	ErrStaleBudgetUpdate = errors.New("budget alert flag already advanced")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BGT-010001"
	ErrCodeBudgetAlreadyExists      BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BGT-010004"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BGT-010005"
	ErrCodeBudgetCategoryNotOwned   BudgetErrorCode = "BGT-010006"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BGT-010007"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BGT-010008"

	// Concurrency errors (02XXXX)
	ErrCodeStaleBudgetUpdate BudgetErrorCode = "BGT-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
