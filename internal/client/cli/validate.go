package cli

import (
	"errors"

	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
)

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 6

var (
	errFillAllFields    = errors.New("Please fill in all fields.")
	errPasswordMismatch = errors.New("Passwords do not match.")
	errPasswordTooShort = errors.New("Password must be at least 6 characters long.")
	errInvalidEmail     = errors.New("Please enter a valid email address.")
)

// validateSignup applies the signup form rules in the order the form shows
// them. The returned error text is shown to the user as is.
func validateSignup(name, email string, password, confirm []byte) error {
	if name == "" || email == "" || len(password) == 0 || len(confirm) == 0 {
		return errFillAllFields
	}
	if string(password) != string(confirm) {
		return errPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return errPasswordTooShort
	}
	if !services.ValidEmail(email) {
		return errInvalidEmail
	}
	return nil
}

func validateLogin(email string, password []byte) error {
	if email == "" || len(password) == 0 {
		return errFillAllFields
	}
	return nil
}
