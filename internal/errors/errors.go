package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth client
var (
	// Credential errors
	ErrNoCredentials   = errors.New("no stored credentials")
	ErrNoRefreshToken  = errors.New("no refresh token stored")
	ErrCredentialStore = errors.New("credential store failure")

	// Session errors
	ErrSessionExpired  = errors.New("session expired")
	ErrRefreshRejected = errors.New("refresh token rejected")

	// Transport errors
	ErrNetwork    = errors.New("network error")
	ErrUnexpected = errors.New("unexpected error")

	// Request errors
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRequestFailed = errors.New("request failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
