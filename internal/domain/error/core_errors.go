// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Ledger error kinds. Every coded error produced by the domain wraps exactly
// one of these (or a not-found/conflict sentinel of its own area), so callers
// can tell failures apart with errors.Is.
var (
	// ErrInvalidArgument is returned for empty labels, unknown category types,
	// non-finite or negative amounts and invalid dates.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidRate is returned when a growth rate makes the valuation undefined.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrOwnerMismatch is returned when a transaction references a category of another user.
	ErrOwnerMismatch = errors.New("owner mismatch")

	// ErrDuplicateTransaction is returned by the occurrence guard.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrCategoryTypeMismatch is returned when an investment category is not of type INVESTMENT.
	ErrCategoryTypeMismatch = errors.New("category type mismatch")
)
