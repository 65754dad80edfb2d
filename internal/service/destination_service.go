package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

type DestinationService struct {
	destinations ports.DestinationRepository
	log          *logger.Logger
}

func NewDestinationService(destinations ports.DestinationRepository, log *logger.Logger) *DestinationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &DestinationService{destinations: destinations, log: log.With("service", "destination")}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.List(ctx)
}

func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	d, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DestinationService) GetByTitle(ctx context.Context, title string) (*domain.Destination, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingFields
	}
	d, err := s.destinations.FindByTitle(ctx, title)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetByTitles resolves a favourites list; titles with no match are skipped.
func (s *DestinationService) GetByTitles(ctx context.Context, titles []string) ([]domain.Destination, error) {
	cleaned := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return s.destinations.FindByTitles(ctx, cleaned)
}

// Seed inserts defaults when the catalogue is empty and reports how many rows
// were written.
func (s *DestinationService) Seed(ctx context.Context, defaults []domain.Destination) (int, error) {
	n, err := s.destinations.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	if err := s.destinations.CreateMany(ctx, defaults); err != nil {
		return 0, err
	}
	s.log.Info("destination catalogue seeded", "count", len(defaults))
	return len(defaults), nil
}
