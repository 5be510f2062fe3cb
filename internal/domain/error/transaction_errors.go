// Package error defines domain-specific errors for the Budgetly application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the type is not expense or income.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidAmount is returned when the amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// ErrDescriptionTooLong is returned when the description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the notes exceed the limit.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category is missing.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category belongs to another user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrUnauthorizedTransactionAccess is returned when user is not authorized
	// to access a transaction.
	ErrUnauthorizedTransactionAccess = errors.New("unauthorized access to transaction")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType  TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount           TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong      TransactionErrorCode = "TXN-010004"
	ErrCodeNotesTooLong            TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound     TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotOwned     TransactionErrorCode = "TXN-010007"
	ErrCodeUnauthorizedTransaction TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTxnFields        TransactionErrorCode = "TXN-010009"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
