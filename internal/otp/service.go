package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

const (
	DefaultTTL    = 5 * time.Minute
	DefaultLength = 6
)

var tracer = otel.Tracer("github.com/njprem/Wanderly_APP_BackEnd/internal/otp")

type Service struct {
	store    Store
	ttl      time.Duration
	length   int
	log      *logger.Logger
	now      func() time.Time
	generate func(int) (string, error)
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithGenerator(generate func(int) (string, error)) Option {
	return func(s *Service) { s.generate = generate }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(store Store, ttl time.Duration, length int, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if length <= 0 {
		length = DefaultLength
	}
	s := &Service{
		store:    store,
		ttl:      ttl,
		length:   length,
		log:      logger.NewNop(),
		now:      time.Now,
		generate: util.GenerateNumericOTP,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a fresh code for recipient and purpose, superseding any
// previous one. The caller is responsible for delivering it.
func (s *Service) Issue(ctx context.Context, recipient string, purpose domain.Purpose) (domain.OneTimeCode, error) {
	ctx, span := tracer.Start(ctx, "otp.Issue", trace.WithAttributes(attribute.String("otp.purpose", string(purpose))))
	defer span.End()

	if recipient == "" || !purpose.Valid() {
		err := fmt.Errorf("otp: invalid recipient or purpose %q", purpose)
		span.SetStatus(codes.Error, err.Error())
		return domain.OneTimeCode{}, err
	}

	value, err := s.generate(s.length)
	if err != nil {
		span.RecordError(err)
		return domain.OneTimeCode{}, fmt.Errorf("otp: generate: %w", err)
	}

	issuedAt := s.now()
	code := domain.OneTimeCode{
		Recipient: recipient,
		Purpose:   purpose,
		Code:      value,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.ttl),
	}
	if err := s.store.Put(ctx, code); err != nil {
		span.RecordError(err)
		return domain.OneTimeCode{}, fmt.Errorf("otp: store: %w", err)
	}

	s.log.Debug("otp issued", "purpose", purpose, "expires_at", code.ExpiresAt)
	return code, nil
}

// Verify consumes the live code when candidate matches it. A mismatch leaves
// the code in place; an expired code is reported as ErrCodeExpired rather
// than ErrCodeNotFound for as long as the store still holds it.
func (s *Service) Verify(ctx context.Context, recipient string, purpose domain.Purpose, candidate string) error {
	ctx, span := tracer.Start(ctx, "otp.Verify", trace.WithAttributes(attribute.String("otp.purpose", string(purpose))))
	defer span.End()

	err := s.verify(ctx, recipient, purpose, candidate)
	if err != nil {
		span.SetAttributes(attribute.String("otp.outcome", outcome(err)))
	}
	return err
}

func (s *Service) verify(ctx context.Context, recipient string, purpose domain.Purpose, candidate string) error {
	entry, err := s.store.Get(ctx, recipient, purpose)
	if err != nil {
		return err
	}
	if entry.Expired(s.now()) {
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(candidate)) != 1 {
		return ErrCodeMismatch
	}

	deleted, err := s.store.CompareAndDelete(ctx, recipient, purpose, entry.Code)
	if err != nil {
		return fmt.Errorf("otp: consume: %w", err)
	}
	if !deleted {
		// Consumed or superseded between the read and the delete.
		return ErrCodeNotFound
	}
	return nil
}

// Discard drops code if it is still the live one for its recipient and purpose.
// Used when delivery failed so an undelivered code cannot be verified.
func (s *Service) Discard(ctx context.Context, code domain.OneTimeCode) error {
	_, err := s.store.CompareAndDelete(ctx, code.Recipient, code.Purpose, code.Code)
	return err
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		return "not_found"
	case errors.Is(err, ErrCodeExpired):
		return "expired"
	case errors.Is(err, ErrCodeMismatch):
		return "mismatch"
	default:
		return "error"
	}
}
