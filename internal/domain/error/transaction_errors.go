// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionValue    TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010002"
	ErrCodeDescriptionTooLong         TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound        TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction   TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound        TransactionErrorCode = "TXN-010006"
	ErrCodeTxnOwnerMismatch           TransactionErrorCode = "TXN-010007"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionOwner    TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionCategory TransactionErrorCode = "TXN-010010"

	// Occurrence errors (02XXXX)
	ErrCodeDuplicateTransaction TransactionErrorCode = "TXN-020001"
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
