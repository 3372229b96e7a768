// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Investment domain errors.
var (
	// ErrInvestmentNotFound is returned when an investment is not found in the system.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrNotAuthorizedToModifyInvestment is returned when user is not authorized to modify an investment.
	ErrNotAuthorizedToModifyInvestment = errors.New("not authorized to modify investment")
)

// InvestmentErrorCode defines error codes for investment errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvestmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRate             InvestmentErrorCode = "INV-010001"
	ErrCodeInvalidEntrance         InvestmentErrorCode = "INV-010002"
	ErrCodeInvalidRecurrenceAdd    InvestmentErrorCode = "INV-010003"
	ErrCodeInvalidMonthsDuration   InvestmentErrorCode = "INV-010004"
	ErrCodeInvestmentCategoryType  InvestmentErrorCode = "INV-010005"
	ErrCodeInvestmentNotFound      InvestmentErrorCode = "INV-010006"
	ErrCodeNotAuthorizedInvestment InvestmentErrorCode = "INV-010007"
	ErrCodeMissingInvestmentFields InvestmentErrorCode = "INV-010008"
	ErrCodeInvalidValuationDate    InvestmentErrorCode = "INV-010009"

	// Valuation errors (02XXXX)
	ErrCodeValuationOutOfRange InvestmentErrorCode = "INV-020001"
)

// InvestmentError represents an investment error with code and message.
type InvestmentError struct {
	Code    InvestmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvestmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvestmentError) Unwrap() error {
	return e.Err
}

// NewInvestmentError creates a new InvestmentError with the given code and message.
func NewInvestmentError(code InvestmentErrorCode, message string, err error) *InvestmentError {
	return &InvestmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
