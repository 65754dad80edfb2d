package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  Jane@Example.COM ": "jane@example.com",
		"jane@example.com":    "jane@example.com",
		"":                    "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProfileUpdateApplyOnlySuppliedFields(t *testing.T) {
	profile := Profile{FirstName: "Ann", Location: "Bali"}
	last := "Lee"
	empty := ""
	ProfileUpdate{LastName: &last, Location: &empty}.Apply(&profile)

	if profile.FirstName != "Ann" || profile.LastName != "Lee" || profile.Location != "" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if !(ProfileUpdate{}).Empty() {
		t.Fatal("zero update should be empty")
	}
}

func TestNewBookingViewFallsBackToBookingFields(t *testing.T) {
	id := uuid.New()
	b := Booking{DestinationID: id, Title: "The Villa", Coordinates: Coordinates{1, 2}, Date: "2025-06-01", PaymentID: "pay_1"}

	view := NewBookingView(b, nil)
	if view.ID != id || view.Title != "The Villa" || view.BookingDate != "2025-06-01" || view.PaymentID != "pay_1" {
		t.Fatalf("unexpected fallback view %+v", view)
	}

	dest := &Destination{ID: id, Title: "The Villa", Price: 300, Rating: 4.5}
	view = NewBookingView(b, dest)
	if view.Price != 300 || view.BookingDate != "2025-06-01" {
		t.Fatalf("unexpected enriched view %+v", view)
	}
}

func TestOneTimeCodeExpiredAtBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	code := OneTimeCode{IssuedAt: now, ExpiresAt: now.Add(5 * time.Minute)}

	if code.Expired(now.Add(5*time.Minute - time.Nanosecond)) {
		t.Fatal("code should still be live just before expiry")
	}
	if !code.Expired(now.Add(5 * time.Minute)) {
		t.Fatal("code should be expired at ExpiresAt")
	}
}
