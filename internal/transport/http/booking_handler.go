package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
)

type bookRequest struct {
	Email         string              `json:"email"`
	DestinationID string              `json:"destinationId"`
	Title         string              `json:"title"`
	Coordinates   *domain.Coordinates `json:"coordinates"`
	Date          string              `json:"date"`
	PaymentID     string              `json:"paymentId"`
}

// book answers 200 whether or not the booking was new; a repeated request for
// the same destination and date returns the list unchanged.
func (h *UserHandler) book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fieldError(c, http.StatusBadRequest, "Missing required fields", "missing_fields")
	}
	if !actingAs(c, req.Email) {
		return forbidden(c)
	}

	var destinationID uuid.UUID
	if raw := strings.TrimSpace(req.DestinationID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fieldError(c, http.StatusBadRequest, "destinationId must be a valid id", "invalid_destination_id")
		}
		destinationID = id
	}

	result, err := h.bookings.Book(c.Request().Context(), service.BookingRequest{
		Email:         req.Email,
		DestinationID: destinationID,
		Title:         req.Title,
		Coordinates:   req.Coordinates,
		Date:          req.Date,
		PaymentID:     req.PaymentID,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"bookedPlaces": result.Bookings})
	case errors.Is(err, service.ErrInvalidBookingDate):
		return fieldError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD", "invalid_date")
	default:
		return h.errs.writeAccountError(c, "book", err)
	}
}

func (h *UserHandler) listBookings(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return fieldError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}
	if !actingAs(c, email) {
		return forbidden(c)
	}

	views, err := h.bookings.ListBookings(c.Request().Context(), email)
	if err != nil {
		return h.errs.writeAccountError(c, "list bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookedPlaces": views})
}
