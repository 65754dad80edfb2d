package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

// ErrDuplicate is returned by in-process repositories on a uniqueness
// violation. Postgres repositories surface the driver error instead.
var ErrDuplicate = errors.New("duplicate record")

// AccountRepository stores local and federated accounts. Lookups that find
// nothing return sql.ErrNoRows. Emails are expected in normalised form.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	CreateLocal(ctx context.Context, username, email, passwordHash string) (*domain.Account, error)
	CreateFederated(ctx context.Context, username, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error)
	// AddFavorite appends title unless already present and returns the list.
	AddFavorite(ctx context.Context, id uuid.UUID, title string) ([]string, error)
	// RemoveFavorite drops every occurrence of title and returns the list.
	RemoveFavorite(ctx context.Context, id uuid.UUID, title string) ([]string, error)
	// AppendBooking inserts booking unless the account already holds one for
	// the same destination and date. The check and the insert are atomic.
	// It returns the account's bookings and whether a row was added.
	AppendBooking(ctx context.Context, id uuid.UUID, booking domain.Booking) ([]domain.Booking, bool, error)
	ListBookings(ctx context.Context, id uuid.UUID) ([]domain.Booking, error)
}
