package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

func TestAccountRowToDomain(t *testing.T) {
	id := uuid.New()
	row := accountRow{
		ID:             id,
		Kind:           "local",
		Username:       "ann",
		Email:          "ann@example.com",
		PasswordHash:   sql.NullString{String: "$2a$10$hash", Valid: true},
		FirstName:      "Ann",
		FavoritePlaces: pq.StringArray{"The Villa"},
	}
	account := row.toDomain()

	if !account.IsLocal() || *account.PasswordHash != "$2a$10$hash" {
		t.Fatalf("expected local account with hash, got %+v", account)
	}
	if account.FirstName != "Ann" || len(account.FavoritePlaces) != 1 {
		t.Fatalf("unexpected profile mapping %+v", account)
	}

	row.Kind = "federated"
	row.PasswordHash = sql.NullString{}
	if federated := row.toDomain(); federated.IsLocal() || federated.PasswordHash != nil {
		t.Fatalf("federated account must not carry a hash")
	}
}

func TestBookingRowFormatsDate(t *testing.T) {
	row := bookingRow{
		DestinationID: uuid.New(),
		Title:         "Skyline Loft",
		Latitude:      1.5,
		Longitude:     2.5,
		BookingDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	b := row.toDomain()
	if b.Date != "2025-06-01" || b.PaymentID != "" || b.Coordinates != (domain.Coordinates{Latitude: 1.5, Longitude: 2.5}) {
		t.Fatalf("unexpected booking %+v", b)
	}
}

func TestDestinationRowToDomainCopiesImages(t *testing.T) {
	row := destinationRow{Title: "The Villa", PlaceImages: pq.StringArray{"a.jpg"}}
	d := row.toDomain()
	row.PlaceImages[0] = "mutated"
	if d.PlaceImages[0] != "a.jpg" {
		t.Fatal("domain value must not alias the scanned array")
	}
}
