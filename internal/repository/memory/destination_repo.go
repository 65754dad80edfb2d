package memory

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

// DestinationRepository keeps the catalogue in insertion order.
type DestinationRepository struct {
	mu    sync.RWMutex
	items []domain.Destination
	now   func() time.Time
}

func NewDestinationRepo() *DestinationRepository {
	return &DestinationRepository{now: time.Now}
}

func (r *DestinationRepository) List(_ context.Context) ([]domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Destination, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, cloneDestination(d))
	}
	return out, nil
}

func (r *DestinationRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if d.ID == id {
			c := cloneDestination(d)
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) FindByTitle(_ context.Context, title string) (*domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if strings.EqualFold(d.Title, title) {
			c := cloneDestination(d)
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *DestinationRepository) FindByTitles(_ context.Context, titles []string) ([]domain.Destination, error) {
	wanted := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		wanted[strings.ToLower(t)] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Destination{}
	for _, d := range r.items {
		if _, ok := wanted[strings.ToLower(d.Title)]; ok {
			out = append(out, cloneDestination(d))
		}
	}
	return out, nil
}

func (r *DestinationRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Destination, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]domain.Destination, len(ids))
	for _, d := range r.items {
		if _, ok := wanted[d.ID]; ok {
			out[d.ID] = cloneDestination(d)
		}
	}
	return out, nil
}

func (r *DestinationRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// CreateMany assigns ids to entries that have none.
func (r *DestinationRepository) CreateMany(_ context.Context, destinations []domain.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range destinations {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = r.now().UTC()
		}
		if d.PlaceImages == nil {
			d.PlaceImages = []string{}
		}
		r.items = append(r.items, cloneDestination(d))
	}
	return nil
}

// Delete removes a destination; bookings that pointed at it fall back to
// their own title and coordinates.
func (r *DestinationRepository) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.items {
		if d.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

func cloneDestination(d domain.Destination) domain.Destination {
	d.PlaceImages = append([]string{}, d.PlaceImages...)
	return d
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
