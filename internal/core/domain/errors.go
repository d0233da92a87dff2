package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Snapshot errors raised by the eligibility engine
var (
	ErrNilApplicantSnapshot = fmt.Errorf("%w: applicant snapshot is nil", ErrInvalidInput)
	ErrNilProductSnapshot   = fmt.Errorf("%w: product snapshot is nil", ErrInvalidInput)
	ErrNegativeEMI          = fmt.Errorf("%w: emi must not be negative", ErrInvalidInput)
)

// InvalidFieldError reports a field whose value violated a bound, with
// enough detail for the caller to build an actionable message
func InvalidFieldError(field, detail string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, detail)
}
