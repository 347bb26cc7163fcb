package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashCost matches the cost the platform has always used for stored hashes.
const hashCost = 10

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a candidate against a stored hash.
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}

// HashCode hashes a one-time verification code. Codes are short-lived
// secrets and get the same treatment as passwords.
func HashCode(code string) (string, error) {
	return HashPassword(code)
}

// VerifyCode checks a submitted code against its stored hash.
func VerifyCode(hash, candidate string) error {
	return VerifyPassword(hash, candidate)
}
