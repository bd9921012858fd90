package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid_credentials")
	ErrInvalidOrExpiredToken   = errors.New("invalid_or_expired_token")
	ErrSecondFactorNotEnabled  = errors.New("second_factor_not_enabled")
	ErrInvalidCode             = errors.New("invalid_code")
	ErrTooManyAttempts         = errors.New("too_many_attempts")
	ErrMissingToken            = errors.New("missing_token")
	ErrDiscriminatorsExhausted = errors.New("discriminators_exhausted")
	ErrEmailAlreadyExists      = errors.New("email_already_exists")
	ErrInvalidRequest          = errors.New("invalid_request")
	ErrInvalidSession          = errors.New("invalid_session")
	ErrProductConflict         = errors.New("product_conflict")
	ErrTOTPAlreadyEnabled      = errors.New("totp_already_enabled")
)

// ValidationError names the offending field. It matches ErrInvalidRequest
// under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
