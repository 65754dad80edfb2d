package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

// AccountRepository keeps accounts in process memory. A single mutex guards
// every read-modify-write so duplicate checks and appends cannot interleave.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	byEmail  map[string]uuid.UUID
	now      func() time.Time
}

func NewAccountRepo() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]*domain.Account),
		byEmail:  make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneAccount(r.accounts[id]), nil
}

func (r *AccountRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneAccount(account), nil
}

func (r *AccountRepository) CreateLocal(_ context.Context, username, email, passwordHash string) (*domain.Account, error) {
	hash := passwordHash
	return r.create(domain.AccountLocal, username, email, &hash)
}

func (r *AccountRepository) CreateFederated(_ context.Context, username, email string) (*domain.Account, error) {
	return r.create(domain.AccountFederated, username, email, nil)
}

func (r *AccountRepository) create(kind domain.AccountKind, username, email string, hash *string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, ports.ErrDuplicate
	}
	now := r.now().UTC()
	account := &domain.Account{
		ID:             uuid.New(),
		Kind:           kind,
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		FavoritePlaces: []string{},
		BookedPlaces:   []domain.Booking{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.accounts[account.ID] = account
	r.byEmail[email] = account.ID
	return cloneAccount(account), nil
}

func (r *AccountRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok || account.Kind != domain.AccountLocal {
		return sql.ErrNoRows
	}
	hash := passwordHash
	account.PasswordHash = &hash
	account.UpdatedAt = r.now().UTC()
	return nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	update.Apply(&account.Profile)
	account.UpdatedAt = r.now().UTC()
	return cloneAccount(account), nil
}

func (r *AccountRepository) AddFavorite(_ context.Context, id uuid.UUID, title string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	for _, existing := range account.FavoritePlaces {
		if existing == title {
			return append([]string{}, account.FavoritePlaces...), nil
		}
	}
	account.FavoritePlaces = append(account.FavoritePlaces, title)
	account.UpdatedAt = r.now().UTC()
	return append([]string{}, account.FavoritePlaces...), nil
}

func (r *AccountRepository) RemoveFavorite(_ context.Context, id uuid.UUID, title string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	kept := account.FavoritePlaces[:0]
	for _, existing := range account.FavoritePlaces {
		if existing != title {
			kept = append(kept, existing)
		}
	}
	account.FavoritePlaces = kept
	account.UpdatedAt = r.now().UTC()
	return append([]string{}, kept...), nil
}

func (r *AccountRepository) AppendBooking(_ context.Context, id uuid.UUID, booking domain.Booking) ([]domain.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, false, sql.ErrNoRows
	}
	for _, existing := range account.BookedPlaces {
		if existing.SameSlot(booking) {
			return append([]domain.Booking{}, account.BookedPlaces...), false, nil
		}
	}
	if booking.BookedAt.IsZero() {
		booking.BookedAt = r.now().UTC()
	}
	account.BookedPlaces = append(account.BookedPlaces, booking)
	account.UpdatedAt = r.now().UTC()
	return append([]domain.Booking{}, account.BookedPlaces...), true, nil
}

func (r *AccountRepository) ListBookings(_ context.Context, id uuid.UUID) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return append([]domain.Booking{}, account.BookedPlaces...), nil
}

func cloneAccount(a *domain.Account) *domain.Account {
	out := *a
	if a.PasswordHash != nil {
		hash := *a.PasswordHash
		out.PasswordHash = &hash
	}
	out.FavoritePlaces = append([]string{}, a.FavoritePlaces...)
	out.BookedPlaces = append([]domain.Booking{}, a.BookedPlaces...)
	return &out
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
