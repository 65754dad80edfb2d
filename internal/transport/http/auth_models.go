package http

import (
	"time"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

// MessageResponse is the body of most auth endpoints.
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent successfully"`
	Code    string `json:"code,omitempty" example:"otp_expired"`
}

// ErrorResponse is the failure body of user and catalogue endpoints.
type ErrorResponse struct {
	Error string `json:"error" example:"User not found"`
	Code  string `json:"code" example:"user_not_found"`
}

// AuthUser is the trimmed account returned next to a token.
type AuthUser struct {
	ID       string `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Username string `json:"username" example:"wanderer"`
	Email    string `json:"email" example:"user@example.com"`
}

// AuthTokenResponse is returned by signup, signin and Google sign-in.
type AuthTokenResponse struct {
	Message   string   `json:"message" example:"Signin successful"`
	User      AuthUser `json:"user"`
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expiresAt" example:"2025-06-02T09:30:00Z"`
}

// CheckUserResponse answers /check-user-exist.
type CheckUserResponse struct {
	Message string `json:"message" example:"User is new, proceed with signup"`
	Exists  bool   `json:"exists" example:"false"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required" example:"user@example.com"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required" example:"user@example.com"`
	OTP   string `json:"otp" validate:"required" example:"482913"`
}

type SignUpRequest struct {
	Username string `json:"username" validate:"required" example:"wanderer"`
	Email    string `json:"email" validate:"required" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"StrongPass!23"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"StrongPass!23"`
}

// GoogleSignInRequest accepts an optional Google ID token. When the server
// has an audience configured the token is mandatory.
type GoogleSignInRequest struct {
	Username string `json:"username" example:"Wanderer"`
	Email    string `json:"email" example:"user@gmail.com"`
	IDToken  string `json:"idToken" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required" example:"user@example.com"`
	NewPassword string `json:"newPassword" validate:"required" example:"EvenStronger!45"`
}

func newAuthUser(a *domain.Account) AuthUser {
	return AuthUser{ID: a.ID.String(), Username: a.Username, Email: a.Email}
}

func newAuthTokenResponse(message string, a *domain.Account, token string, expiresAt time.Time) AuthTokenResponse {
	return AuthTokenResponse{
		Message:   message,
		User:      newAuthUser(a),
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}
}
