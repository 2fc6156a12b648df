package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor for back-office staff accounts.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt hash stored for a staff account. Only the
// hash is persisted; the plaintext never leaves the registration path.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
// Any bcrypt error counts as a mismatch so login treats malformed hashes as
// bad credentials rather than surfacing them.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
