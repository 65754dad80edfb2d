package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AccountKind string

const (
	AccountLocal     AccountKind = "local"
	AccountFederated AccountKind = "federated"
)

type Profile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Location     string `json:"location"`
	MobileNumber string `json:"mobileNumber"`
	ProfileImage string `json:"profileImage"`
}

// Account is either a password holder (local) or a Google sign-in (federated).
// Emails are unique across both kinds.
type Account struct {
	ID             uuid.UUID   `json:"id"`
	Kind           AccountKind `json:"kind"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	PasswordHash   *string     `json:"-"`
	Profile
	FavoritePlaces []string  `json:"favoritePlaces"`
	BookedPlaces   []Booking `json:"bookedPlaces"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (a *Account) IsLocal() bool {
	return a != nil && a.Kind == AccountLocal && a.PasswordHash != nil
}

// ProfileUpdate carries only the fields a caller supplied; nil means unchanged.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Location     *string
	MobileNumber *string
	ProfileImage *string
}

func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Location == nil &&
		u.MobileNumber == nil && u.ProfileImage == nil
}

// Apply copies the supplied fields onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.MobileNumber != nil {
		p.MobileNumber = *u.MobileNumber
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
}

// NormalizeEmail is the canonical form used for lookups, uniqueness and code keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
