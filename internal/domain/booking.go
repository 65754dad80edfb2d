package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingDateLayout is the calendar-day format bookings are keyed on.
const BookingDateLayout = "2006-01-02"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Booking is unique per (account, destination, date).
type Booking struct {
	DestinationID uuid.UUID   `json:"destinationId"`
	Title         string      `json:"title"`
	Coordinates   Coordinates `json:"coordinates"`
	Date          string      `json:"date"`
	PaymentID     string      `json:"paymentId,omitempty"`
	BookedAt      time.Time   `json:"bookedAt"`
}

// SameSlot reports whether b and other occupy the same destination and day.
func (b Booking) SameSlot(other Booking) bool {
	return b.DestinationID == other.DestinationID && b.Date == other.Date
}

// BookingView is a booking enriched with the destination it points at. When
// the destination no longer exists the booking's own title and coordinates
// are used.
type BookingView struct {
	Destination
	BookingDate string `json:"bookingDate"`
	PaymentID   string `json:"paymentId,omitempty"`
}

func NewBookingView(b Booking, d *Destination) BookingView {
	view := BookingView{BookingDate: b.Date, PaymentID: b.PaymentID}
	if d != nil {
		view.Destination = *d
		return view
	}
	view.Destination = Destination{
		ID:          b.DestinationID,
		Title:       b.Title,
		Coordinates: b.Coordinates,
		PlaceImages: []string{},
	}
	return view
}
