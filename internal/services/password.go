package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/xperttutor/user-service/internal/models"
)

// DefaultHashCost is the bcrypt cost factor used when none is configured.
const DefaultHashCost = 12

// SetPassword replaces the user's stored hash with a bcrypt hash of plaintext.
// Passing the currently stored hash back through (an update payload echoing
// the record) is a no-op, so the value is never double-hashed.
func SetPassword(u *models.User, plaintext string, cost int) error {
	if plaintext == "" || plaintext == u.PasswordHash {
		return nil
	}
	if cost == 0 {
		cost = DefaultHashCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hashed)
	return nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A mismatch
// is (false, nil); a non-nil error means the stored hash itself is malformed,
// which is a data-integrity problem rather than a failed login.
func VerifyPassword(u *models.User, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("stored password hash is malformed: %w", err)
}
