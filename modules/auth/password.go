package auth

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the fixed cost factor for password hashing.
	BcryptCost = 10
)

// PasswordHasher provides password hashing and verification functionality.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a new PasswordHasher with the fixed cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost: BcryptCost,
	}
}

// Hash generates a bcrypt hash of the given password. The salt and cost
// factor are embedded in the output, so verification needs nothing else.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks if the provided password matches the hash.
// A mismatch returns false, never an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
