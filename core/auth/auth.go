package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"openmusic/core/apperror"
)

// PasswordCost is the bcrypt cost for stored user passwords.
const PasswordCost = bcrypt.DefaultCost

// HashPassword hashes a user password for storage in users.password.
// Passwords longer than bcrypt accepts are rejected as bad input.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.Invariant("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash user password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches a stored user hash.
// A malformed stored hash never matches.
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
