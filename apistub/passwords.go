package apistub

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrMismatchedHashAndPassword is returned when a password does not match
// the stored hash.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// HashPassword generates a bcrypt hash for account creation and seeding.
// The stub uses the default cost; it holds throwaway development data.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", goerrors.New("password cannot be empty", goerrors.CategoryBadInput)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash validates the cleartext password against the
// stored hash.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
