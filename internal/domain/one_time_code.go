package domain

import "time"

// Purpose scopes a one-time code to a single flow so a registration code can
// never complete a password reset for the same address.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposePasswordReset Purpose = "password_reset"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegistration, PurposePasswordReset:
		return true
	}
	return false
}

type OneTimeCode struct {
	Recipient string    `json:"recipient"`
	Purpose   Purpose   `json:"purpose"`
	Code      string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired is true once now has reached ExpiresAt.
func (c OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
