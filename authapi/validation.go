package authapi

import (
	"fmt"
	"regexp"
	"strings"

	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Field rules mirror the server's input schemas so obviously invalid input
// never leaves the client.
var (
	emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	otpRegexp   = regexp.MustCompile(`^\d{6}$`)
)

// ValidationError carries a field-to-messages map in the same shape as the
// envelope's errors field, so local and remote validation failures look
// identical to callers.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return internalerrors.ErrValidation
}

func (in SignUpInput) validate() error {
	fields := map[string][]string{}
	if l := len(strings.TrimSpace(in.FullName)); l < 2 || l > 100 {
		fields["fullName"] = append(fields["fullName"], "must be between 2 and 100 characters")
	}
	validateEmail(fields, in.Email)
	if l := len(in.Password); l < 8 || l > 128 {
		fields["password"] = append(fields["password"], "must be between 8 and 128 characters")
	}
	return validationResult(fields)
}

func (in SignInInput) validate() error {
	fields := map[string][]string{}
	validateEmail(fields, in.Email)
	if in.Password == "" {
		fields["password"] = append(fields["password"], "is required")
	}
	return validationResult(fields)
}

func (in VerifyOTPInput) validate() error {
	fields := map[string][]string{}
	validateEmail(fields, in.Email)
	if !otpRegexp.MatchString(in.OTP) {
		fields["otp"] = append(fields["otp"], "must be a 6-digit code")
	}
	return validationResult(fields)
}

func validateEmail(fields map[string][]string, email string) {
	if !emailRegexp.MatchString(strings.TrimSpace(email)) {
		fields["email"] = append(fields["email"], "must be a valid email address")
	}
}

func validationResult(fields map[string][]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
