// Package validation provides input validators backed by go-playground/validator.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// emailRule is the validator tag set applied to email addresses.
const emailRule = "required,email"

// ErrNotConfigured is returned by a validator built without its engine.
var ErrNotConfigured = errors.New("email validator not configured")

// EmailValidator reports whether a string is a well-formed email address.
// It is safe for concurrent use.
type EmailValidator struct {
	validate *validator.Validate
}

// NewEmailValidator creates an EmailValidator.
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// IsValid returns false for malformed addresses, including the empty string.
// An error means the validator itself failed, not that the address is bad.
func (v *EmailValidator) IsValid(email string) (bool, error) {
	if v == nil || v.validate == nil {
		return false, ErrNotConfigured
	}

	err := v.validate.Var(email, emailRule)
	if err == nil {
		return true, nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return false, nil
	}

	return false, fmt.Errorf("validate email: %w", err)
}
