// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

const (
	// DefaultPasswordCost is the bcrypt cost used when none is configured.
	DefaultPasswordCost = 12
	minPasswordLength   = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooLong  = errors.New("password must be at most 72 bytes long")
)

type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. Costs outside
// bcrypt's range fall back to DefaultPasswordCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	return &passwordService{cost: cost}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (s *passwordService) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return errPasswordTooShort
	case len(password) > maxPasswordLength:
		return errPasswordTooLong
	}
	return nil
}
