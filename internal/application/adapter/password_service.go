// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService defines the interface for password hashing and verification.
type PasswordService interface {
	// HashPassword hashes a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a hashed password.
	// It returns an error when they do not match.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength reports whether a password meets the minimum
	// length and composition requirements.
	ValidatePasswordStrength(password string) error
}
