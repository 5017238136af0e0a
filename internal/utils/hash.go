package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt embeds a random per-record salt in the hash
const hashCost = 10

var ErrPasswordTooLong = errors.New("password exceeds bcrypt length limit")

// HashPassword generates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks the password against a stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
