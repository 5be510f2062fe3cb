// Package error defines domain-specific errors for the Budgetly application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a category with the same name
	// already exists for the user.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrInvalidCategoryType is returned when the type is not expense or income.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrCategoryNameTooLong is returned when the name exceeds the limit.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidColorFormat is returned when the color is not a hex value.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrCategoryInUse is returned when deleting a category that still has
	// transactions, budgets, or recurring definitions attached.
	ErrCategoryInUse = errors.New("category is in use")

	// ErrUnauthorizedCategoryAccess is returned when user is not authorized
	// to access a category.
	ErrUnauthorizedCategoryAccess = errors.New("unauthorized access to category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	ErrCodeCategoryNotFound           CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists         CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType        CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryInUse              CategoryErrorCode = "CAT-010004"
	ErrCodeUnauthorizedCategoryAccess CategoryErrorCode = "CAT-010005"
	ErrCodeMissingCategoryFields      CategoryErrorCode = "CAT-010006"
	ErrCodeCategoryNameTooLong        CategoryErrorCode = "CAT-010007"
	ErrCodeInvalidColorFormat         CategoryErrorCode = "CAT-010008"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
