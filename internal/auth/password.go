package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for admin password hashes.
const BcryptCost = 12

var ErrInvalidPassword = errors.New("invalid password")

// HashPassword hashes a password with bcrypt. bcrypt only reads the first
// 72 bytes, so longer passwords are rejected.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
