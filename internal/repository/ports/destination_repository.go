package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	// FindByTitle matches case-insensitively; the oldest match wins.
	FindByTitle(ctx context.Context, title string) (*domain.Destination, error)
	FindByTitles(ctx context.Context, titles []string) ([]domain.Destination, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Destination, error)
	Count(ctx context.Context) (int, error)
	CreateMany(ctx context.Context, destinations []domain.Destination) error
}
