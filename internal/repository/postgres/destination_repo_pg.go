package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

const destinationColumns = `id, title, location, rooms, bathrooms, price, description, image,
	place_images, rating, latitude, longitude, pool, created_at`

type destinationRow struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Location    string         `db:"location"`
	Rooms       int            `db:"rooms"`
	Bathrooms   int            `db:"bathrooms"`
	Price       float64        `db:"price"`
	Description string         `db:"description"`
	Image       string         `db:"image"`
	PlaceImages pq.StringArray `db:"place_images"`
	Rating      float64        `db:"rating"`
	Latitude    float64        `db:"latitude"`
	Longitude   float64        `db:"longitude"`
	Pool        bool           `db:"pool"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r destinationRow) toDomain() domain.Destination {
	return domain.Destination{
		ID:          r.ID,
		Title:       r.Title,
		Location:    r.Location,
		Rooms:       r.Rooms,
		Bathrooms:   r.Bathrooms,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		PlaceImages: append([]string{}, r.PlaceImages...),
		Rating:      r.Rating,
		Coordinates: domain.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		Pool:        r.Pool,
		CreatedAt:   r.CreatedAt,
	}
}

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination ORDER BY created_at ASC, title ASC`
	return r.selectMany(ctx, query)
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE id = $1`
	var row destinationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	d := row.toDomain()
	return &d, nil
}

func (r *DestinationRepository) FindByTitle(ctx context.Context, title string) (*domain.Destination, error) {
	const query = `
		SELECT ` + destinationColumns + `
		FROM destination
		WHERE LOWER(title) = LOWER($1)
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`
	var row destinationRow
	if err := r.db.GetContext(ctx, &row, query, title); err != nil {
		return nil, err
	}
	d := row.toDomain()
	return &d, nil
}

func (r *DestinationRepository) FindByTitles(ctx context.Context, titles []string) ([]domain.Destination, error) {
	if len(titles) == 0 {
		return []domain.Destination{}, nil
	}
	lowered := make([]string, 0, len(titles))
	for _, t := range titles {
		lowered = append(lowered, strings.ToLower(t))
	}
	const query = `
		SELECT ` + destinationColumns + `
		FROM destination
		WHERE LOWER(title) = ANY($1)
		ORDER BY created_at ASC, title ASC
	`
	return r.selectMany(ctx, query, pq.StringArray(lowered))
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Destination, error) {
	out := make(map[uuid.UUID]domain.Destination, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	const query = `SELECT ` + destinationColumns + ` FROM destination WHERE id = ANY($1::uuid[])`
	found, err := r.selectMany(ctx, query, pq.StringArray(raw))
	if err != nil {
		return nil, err
	}
	for _, d := range found {
		out[d.ID] = d
	}
	return out, nil
}

func (r *DestinationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM destination`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *DestinationRepository) CreateMany(ctx context.Context, destinations []domain.Destination) error {
	const query = `
		INSERT INTO destination (
			title, location, rooms, bathrooms, price, description, image,
			place_images, rating, latitude, longitude, pool
		) VALUES (
			:title, :location, :rooms, :bathrooms, :price, :description, :image,
			:place_images, :rating, :latitude, :longitude, :pool
		)
	`
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range destinations {
		args := map[string]any{
			"title":        d.Title,
			"location":     d.Location,
			"rooms":        d.Rooms,
			"bathrooms":    d.Bathrooms,
			"price":        d.Price,
			"description":  d.Description,
			"image":        d.Image,
			"place_images": pq.StringArray(d.PlaceImages),
			"rating":       d.Rating,
			"latitude":     d.Coordinates.Latitude,
			"longitude":    d.Coordinates.Longitude,
			"pool":         d.Pool,
		}
		if _, err := tx.NamedExecContext(ctx, query, args); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *DestinationRepository) selectMany(ctx context.Context, query string, args ...any) ([]domain.Destination, error) {
	var rows []destinationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Destination, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
