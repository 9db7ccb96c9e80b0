package authapi

import (
	"time"

	"github.com/google/uuid"
)

// User is the account representation returned by the authentication service.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TokenPair is the credential pair minted on sign-in or OTP verification.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

// AuthData is the data payload of authentication responses. Tokens is nil
// for flows that do not mint tokens (sign-up pending OTP, resend-otp).
type AuthData struct {
	User    *User      `json:"user,omitempty"`
	Tokens  *TokenPair `json:"tokens,omitempty"`
	Message *string    `json:"message,omitempty"`
}

// UserProfile is the authenticated profile returned by GET /me.
type UserProfile struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Phone     *string   `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthStatus is the unauthenticated health probe payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// SignUpInput carries the registration fields.
type SignUpInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInInput carries the sign-in credentials.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPInput carries the email and 6-digit verification code.
type VerifyOTPInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resendOTPInput struct {
	Email string `json:"email"`
}
