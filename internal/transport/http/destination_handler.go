package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
)

type DestinationHandler struct {
	destinations *service.DestinationService
	errs         errorWriter
}

type titlesRequest struct {
	Titles []string `json:"titles" validate:"required,min=1"`
}

func RegisterDestinations(e *echo.Echo, destinations *service.DestinationService, log *logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	h := &DestinationHandler{
		destinations: destinations,
		errs:         errorWriter{log: log.With("handler", "destination")},
	}

	e.GET("/fetch-destinations", h.list)
	e.GET("/destination/by-id/:id", h.getByID)
	e.GET("/destination/:title", h.getByTitle)
	e.POST("/destinations/by-titles", h.getByTitles)
}

func (h *DestinationHandler) list(c echo.Context) error {
	destinations, err := h.destinations.List(c.Request().Context())
	if err != nil {
		h.errs.log.Error("list destinations failed", "error", err)
		return fieldError(c, http.StatusInternalServerError, "Failed to fetch destinations", "internal")
	}
	return c.JSON(http.StatusOK, destinations)
}

func (h *DestinationHandler) getByTitle(c echo.Context) error {
	destination, err := h.destinations.GetByTitle(c.Request().Context(), c.Param("title"))
	if err != nil {
		return h.writeLookupError(c, err)
	}
	return c.JSON(http.StatusOK, destination)
}

func (h *DestinationHandler) getByID(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return fieldError(c, http.StatusNotFound, "Destination not found", "destination_not_found")
	}
	destination, err := h.destinations.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.writeLookupError(c, err)
	}
	return c.JSON(http.StatusOK, destination)
}

func (h *DestinationHandler) getByTitles(c echo.Context) error {
	var req titlesRequest
	if err := c.Bind(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "Titles array required", "missing_fields")
	}
	if err := c.Validate(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "Titles array required", "missing_fields")
	}

	destinations, err := h.destinations.GetByTitles(c.Request().Context(), req.Titles)
	if err != nil {
		h.errs.log.Error("destinations by titles failed", "error", err)
		return fieldError(c, http.StatusInternalServerError, "Failed to fetch destinations", "internal")
	}
	return c.JSON(http.StatusOK, destinations)
}

func (h *DestinationHandler) writeLookupError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDestinationNotFound), errors.Is(err, service.ErrMissingFields):
		return fieldError(c, http.StatusNotFound, "Destination not found", "destination_not_found")
	default:
		h.errs.log.Error("destination lookup failed", "error", err)
		return fieldError(c, http.StatusInternalServerError, "Failed to fetch destination details", "internal")
	}
}
