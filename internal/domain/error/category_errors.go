// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryLabelExists is returned when the (user, label, type) triple is already taken.
	ErrCategoryLabelExists = errors.New("category label already exists")

	// ErrCategoryInUse is returned when deleting a category still referenced by transactions or investments.
	ErrCategoryInUse = errors.New("category is referenced by transactions")

	// ErrNotAuthorizedToModifyCategory is returned when user is not authorized to modify a category.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyCategoryLabel    CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryLabelTooLong  CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryLabelExists   CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010007"
	ErrCodeCategoryTypeMismatch  CategoryErrorCode = "CAT-010008"
	ErrCodeCategoryInUse         CategoryErrorCode = "CAT-010009"
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
