// Package authapi provides typed wrappers for the authentication service
// endpoints: sign-up, sign-in, OTP verification, sign-out, and profile.
// All calls go through the authenticated session client, which owns trace
// headers, bearer attachment, and refresh-on-401.
package authapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-client/client"
	"github.com/jrsteele09/go-auth-client/credentials"
	internalerrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Doer issues one logical API call and returns a normalized result.
type Doer interface {
	Do(ctx context.Context, req client.Request) *client.Result
}

// Service is the auth endpoint surface.
type Service struct {
	api   Doer
	store credentials.Store
	log   zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLogger sets the service logger (default: no-op).
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService initializes the auth service surface. The store receives the
// token pair on sign-in and OTP verification and is cleared on sign-out.
func NewService(api Doer, store credentials.Store, options ...ServiceOption) (*Service, error) {
	if api == nil {
		return nil, errors.New("[authapi.NewService] api client is required")
	}
	if store == nil {
		return nil, errors.New("[authapi.NewService] credential store is required")
	}

	s := &Service{api: api, store: store, log: zerolog.Nop()}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// SignUp registers a new account. The account stays inactive until the OTP
// sent to the email is verified, so no tokens are minted here.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*AuthData, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	res := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/signup", Body: input})
	if !res.Success {
		return nil, resultError(res, "SignUp")
	}
	return decodeAuthData(res, "SignUp")
}

// SignIn authenticates with email and password and persists the returned
// token pair.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (*AuthData, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	res := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/signin", Body: input})
	if !res.Success {
		return nil, resultError(res, "SignIn")
	}

	data, err := decodeAuthData(res, "SignIn")
	if err != nil {
		return nil, err
	}
	if err := s.persistTokens(data); err != nil {
		return nil, err
	}
	return data, nil
}

// VerifyOTP confirms the 6-digit code, activating the account, and persists
// the returned token pair.
func (s *Service) VerifyOTP(ctx context.Context, input VerifyOTPInput) (*AuthData, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	res := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/verify-otp", Body: input})
	if !res.Success {
		return nil, resultError(res, "VerifyOTP")
	}

	data, err := decodeAuthData(res, "VerifyOTP")
	if err != nil {
		return nil, err
	}
	if err := s.persistTokens(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ResendOTP requests a new verification code. The server rate-limits this
// per email; a limit hit comes back as a failure envelope.
func (s *Service) ResendOTP(ctx context.Context, email string) (*AuthData, error) {
	fields := map[string][]string{}
	validateEmail(fields, email)
	if err := validationResult(fields); err != nil {
		return nil, err
	}

	res := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/resend-otp", Body: resendOTPInput{Email: email}})
	if !res.Success {
		return nil, resultError(res, "ResendOTP")
	}
	return decodeAuthData(res, "ResendOTP")
}

// SignOut invalidates the session server-side and clears the stored
// credential pair. Local credentials are cleared even when the server call
// fails, so a dead session never lingers on disk.
func (s *Service) SignOut(ctx context.Context) error {
	res := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/signout"})

	if err := s.store.Clear(); err != nil {
		return internalerrors.Wrapf(internalerrors.ErrCredentialStore, "[Service.SignOut] %v", err)
	}
	if !res.Success {
		s.log.Debug().Str("message", res.Message).Msg("server-side signout failed, local credentials cleared")
		return resultError(res, "SignOut")
	}
	return nil
}

// Profile returns the authenticated user's profile.
func (s *Service) Profile(ctx context.Context) (*UserProfile, error) {
	res := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/me"})
	if !res.Success {
		return nil, resultError(res, "Profile")
	}

	profile, err := client.DecodeData[UserProfile](res.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Profile] decode")
	}
	return &profile, nil
}

// Health probes the authentication service.
func (s *Service) Health(ctx context.Context) (*HealthStatus, error) {
	res := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/health"})
	if !res.Success {
		return nil, resultError(res, "Health")
	}

	status, err := client.DecodeData[HealthStatus](res.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Health] decode")
	}
	return &status, nil
}

func (s *Service) persistTokens(data *AuthData) error {
	if data.Tokens == nil {
		return nil
	}
	err := s.store.Set(credentials.Credentials{
		AccessToken:  data.Tokens.AccessToken,
		RefreshToken: data.Tokens.RefreshToken,
	})
	if err != nil {
		return internalerrors.Wrapf(internalerrors.ErrCredentialStore, "[Service.persistTokens] %v", err)
	}
	return nil
}

func decodeAuthData(res *client.Result, op string) (*AuthData, error) {
	data, err := client.DecodeData[AuthData](res.Envelope)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.%s] decode", op)
	}
	return &data, nil
}

// resultError turns a failure result into an error. Remote field errors keep
// the same shape as local validation failures.
func resultError(res *client.Result, op string) error {
	if len(res.Errors) > 0 {
		return &ValidationError{Fields: res.Errors}
	}
	err := res.Err
	if err == nil {
		err = internalerrors.ErrRequestFailed
	}
	return internalerrors.Wrapf(err, "[Service.%s] %s", op, res.Message)
}
