package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

var tracer = otel.Tracer("github.com/njprem/Wanderly_APP_BackEnd/internal/service")

type BookingRequest struct {
	Email         string
	DestinationID uuid.UUID
	Title         string
	Coordinates   *domain.Coordinates
	Date          string
	PaymentID     string
}

// BookingResult is the account's booking list after the call. Created is false
// when an identical (destination, date) booking already existed.
type BookingResult struct {
	Bookings []domain.Booking
	Created  bool
}

type BookingService struct {
	accounts     ports.AccountRepository
	destinations ports.DestinationRepository
	log          *logger.Logger
	now          func() time.Time
}

func NewBookingService(accounts ports.AccountRepository, destinations ports.DestinationRepository, log *logger.Logger) *BookingService {
	if log == nil {
		log = logger.NewNop()
	}
	return &BookingService{
		accounts:     accounts,
		destinations: destinations,
		log:          log.With("service", "booking"),
		now:          time.Now,
	}
}

// Book records a booking at most once per (destination, date). Repeating the
// same request is a no-op that still returns the current list.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	ctx, span := tracer.Start(ctx, "booking.Book")
	defer span.End()

	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrMissingFields
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	date := strings.TrimSpace(req.Date)
	if req.DestinationID == uuid.Nil || title == "" || req.Coordinates == nil || date == "" {
		return nil, ErrMissingFields
	}
	if _, err := time.Parse(domain.BookingDateLayout, date); err != nil {
		return nil, ErrInvalidBookingDate
	}
	if strings.TrimSpace(req.PaymentID) == "" {
		s.log.Warn("booking without payment reference", "account_id", account.ID, "destination_id", req.DestinationID)
	}

	booking := domain.Booking{
		DestinationID: req.DestinationID,
		Title:         title,
		Coordinates:   *req.Coordinates,
		Date:          date,
		PaymentID:     strings.TrimSpace(req.PaymentID),
		BookedAt:      s.now().UTC(),
	}
	bookings, created, err := s.accounts.AppendBooking(ctx, account.ID, booking)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	span.SetAttributes(attribute.Bool("booking.created", created))
	if created {
		s.log.Info("booking recorded", "account_id", account.ID, "destination_id", booking.DestinationID, "date", booking.Date)
	}
	return &BookingResult{Bookings: bookings, Created: created}, nil
}

// ListBookings joins each booking with its destination. A booking whose
// destination is gone keeps its own title and coordinates.
func (s *BookingService) ListBookings(ctx context.Context, email string) ([]domain.BookingView, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, ErrMissingFields
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(account.BookedPlaces))
	seen := make(map[uuid.UUID]struct{}, len(account.BookedPlaces))
	for _, b := range account.BookedPlaces {
		if _, ok := seen[b.DestinationID]; ok {
			continue
		}
		seen[b.DestinationID] = struct{}{}
		ids = append(ids, b.DestinationID)
	}

	destinations, err := s.destinations.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("destination lookup failed, returning raw bookings", "account_id", account.ID, "error", err)
		destinations = nil
	}

	views := make([]domain.BookingView, 0, len(account.BookedPlaces))
	for _, b := range account.BookedPlaces {
		var dest *domain.Destination
		if d, ok := destinations[b.DestinationID]; ok {
			dest = &d
		}
		views = append(views, domain.NewBookingView(b, dest))
	}
	return views, nil
}
