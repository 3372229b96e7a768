package adapter

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	// ValidatePasswordStrength rejects passwords that cannot be accepted for
	// a new account.
	ValidatePasswordStrength(password string) error

	HashPassword(password string) (string, error)

	// VerifyPassword returns an error unless password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error
}
