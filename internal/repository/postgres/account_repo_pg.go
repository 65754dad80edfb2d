package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

const accountColumns = `id, kind, username, email, password_hash, first_name, last_name, location,
	mobile_number, profile_image_url, favorite_places, created_at, updated_at`

type accountRow struct {
	ID              uuid.UUID      `db:"id"`
	Kind            string         `db:"kind"`
	Username        string         `db:"username"`
	Email           string         `db:"email"`
	PasswordHash    sql.NullString `db:"password_hash"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	Location        string         `db:"location"`
	MobileNumber    string         `db:"mobile_number"`
	ProfileImageURL string         `db:"profile_image_url"`
	FavoritePlaces  pq.StringArray `db:"favorite_places"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r accountRow) toDomain() *domain.Account {
	account := &domain.Account{
		ID:       r.ID,
		Kind:     domain.AccountKind(r.Kind),
		Username: r.Username,
		Email:    r.Email,
		Profile: domain.Profile{
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Location:     r.Location,
			MobileNumber: r.MobileNumber,
			ProfileImage: r.ProfileImageURL,
		},
		FavoritePlaces: append([]string{}, r.FavoritePlaces...),
		BookedPlaces:   []domain.Booking{},
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.PasswordHash.Valid {
		hash := r.PasswordHash.String
		account.PasswordHash = &hash
	}
	return account
}

type bookingRow struct {
	DestinationID uuid.UUID      `db:"destination_id"`
	Title         string         `db:"title"`
	Latitude      float64        `db:"latitude"`
	Longitude     float64        `db:"longitude"`
	BookingDate   time.Time      `db:"booking_date"`
	PaymentID     sql.NullString `db:"payment_id"`
	BookedAt      time.Time      `db:"booked_at"`
}

func (r bookingRow) toDomain() domain.Booking {
	return domain.Booking{
		DestinationID: r.DestinationID,
		Title:         r.Title,
		Coordinates:   domain.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		Date:          r.BookingDate.Format(domain.BookingDateLayout),
		PaymentID:     r.PaymentID.String,
		BookedAt:      r.BookedAt,
	}
}

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM account WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM account WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, err
	}
	account := row.toDomain()
	bookings, err := r.ListBookings(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	account.BookedPlaces = bookings
	return account, nil
}

func (r *AccountRepository) CreateLocal(ctx context.Context, username, email, passwordHash string) (*domain.Account, error) {
	const query = `
		INSERT INTO account (kind, username, email, password_hash)
		VALUES ('local', $1, $2, $3)
		RETURNING ` + accountColumns

	var row accountRow
	if err := r.db.QueryRowxContext(ctx, query, username, email, passwordHash).StructScan(&row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) CreateFederated(ctx context.Context, username, email string) (*domain.Account, error) {
	const query = `
		INSERT INTO account (kind, username, email)
		VALUES ('federated', $1, $2)
		RETURNING ` + accountColumns

	var row accountRow
	if err := r.db.QueryRowxContext(ctx, query, username, email).StructScan(&row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE account
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND kind = 'local'
	`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	const query = `
		UPDATE account
		SET first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			location = COALESCE($4, location),
			mobile_number = COALESCE($5, mobile_number),
			profile_image_url = COALESCE($6, profile_image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns

	var row accountRow
	err := r.db.QueryRowxContext(ctx, query, id,
		update.FirstName, update.LastName, update.Location, update.MobileNumber, update.ProfileImage,
	).StructScan(&row)
	if err != nil {
		return nil, err
	}
	account := row.toDomain()
	if account.BookedPlaces, err = r.ListBookings(ctx, id); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) AddFavorite(ctx context.Context, id uuid.UUID, title string) ([]string, error) {
	const query = `
		UPDATE account
		SET favorite_places = CASE
				WHEN $2::text = ANY(favorite_places) THEN favorite_places
				ELSE array_append(favorite_places, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING favorite_places
	`
	var favorites pq.StringArray
	if err := r.db.GetContext(ctx, &favorites, query, id, title); err != nil {
		return nil, err
	}
	return append([]string{}, favorites...), nil
}

func (r *AccountRepository) RemoveFavorite(ctx context.Context, id uuid.UUID, title string) ([]string, error) {
	const query = `
		UPDATE account
		SET favorite_places = array_remove(favorite_places, $2::text),
			updated_at = NOW()
		WHERE id = $1
		RETURNING favorite_places
	`
	var favorites pq.StringArray
	if err := r.db.GetContext(ctx, &favorites, query, id, title); err != nil {
		return nil, err
	}
	return append([]string{}, favorites...), nil
}

func (r *AccountRepository) AppendBooking(ctx context.Context, id uuid.UUID, booking domain.Booking) ([]domain.Booking, bool, error) {
	const query = `
		INSERT INTO account_booking (account_id, destination_id, title, latitude, longitude, booking_date, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6::date, NULLIF($7, ''))
		ON CONFLICT ON CONSTRAINT account_booking_slot_key DO NOTHING
		RETURNING id
	`
	var inserted int64
	err := r.db.GetContext(ctx, &inserted, query,
		id, booking.DestinationID, booking.Title,
		booking.Coordinates.Latitude, booking.Coordinates.Longitude,
		booking.Date, booking.PaymentID,
	)
	appended := true
	switch {
	case errors.Is(err, sql.ErrNoRows):
		appended = false
	case err != nil:
		return nil, false, err
	}

	bookings, err := r.ListBookings(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return bookings, appended, nil
}

func (r *AccountRepository) ListBookings(ctx context.Context, id uuid.UUID) ([]domain.Booking, error) {
	const query = `
		SELECT destination_id, title, latitude, longitude, booking_date, payment_id, booked_at
		FROM account_booking
		WHERE account_id = $1
		ORDER BY booked_at ASC, id ASC
	`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toDomain())
	}
	return bookings, nil
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
