package otp

import (
	"context"
	"errors"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

var (
	ErrCodeNotFound = errors.New("no otp found")
	ErrCodeExpired  = errors.New("otp expired")
	ErrCodeMismatch = errors.New("invalid otp")
)

// Store keeps at most one live code per (recipient, purpose).
type Store interface {
	// Put replaces any code already held for the same recipient and purpose.
	Put(ctx context.Context, code domain.OneTimeCode) error
	// Get returns ErrCodeNotFound when nothing is held. Expired entries may
	// still be returned until they are evicted.
	Get(ctx context.Context, recipient string, purpose domain.Purpose) (*domain.OneTimeCode, error)
	// CompareAndDelete removes the entry only if its code equals code. It
	// reports whether a deletion happened; at most one concurrent caller wins.
	CompareAndDelete(ctx context.Context, recipient string, purpose domain.Purpose, code string) (bool, error)
}
