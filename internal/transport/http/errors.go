package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/otp"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

// Auth routes answer with {"message"}; user and catalogue routes with
// {"error"}. Both carry a stable "code".
func messageError(c echo.Context, status int, message, code string) error {
	return c.JSON(status, util.Message(message).Code(code))
}

func fieldError(c echo.Context, status int, message, code string) error {
	return c.JSON(status, util.Error(message).Code(code))
}

type errorWriter struct {
	log *logger.Logger
}

func (w errorWriter) serverMessage(c echo.Context, op string, err error) error {
	w.log.Error(op+" failed", "path", c.Path(), "error", err)
	return messageError(c, http.StatusInternalServerError, "Server error", "internal")
}

func (w errorWriter) serverError(c echo.Context, op string, err error) error {
	w.log.Error(op+" failed", "path", c.Path(), "error", err)
	return fieldError(c, http.StatusInternalServerError, "Internal server error", "internal")
}

func (w errorWriter) writeCodeError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Email and OTP are required", "missing_fields")
	case errors.Is(err, otp.ErrCodeNotFound):
		return messageError(c, http.StatusBadRequest, "No OTP found", "otp_not_found")
	case errors.Is(err, otp.ErrCodeExpired):
		return messageError(c, http.StatusBadRequest, "OTP expired", "otp_expired")
	case errors.Is(err, otp.ErrCodeMismatch):
		return messageError(c, http.StatusBadRequest, "Invalid OTP", "otp_mismatch")
	default:
		return w.serverMessage(c, op, err)
	}
}

// writeAccountError covers the lookup failures shared by every /user route.
func (w errorWriter) writeAccountError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return fieldError(c, http.StatusBadRequest, "Missing required fields", "missing_fields")
	case errors.Is(err, service.ErrAccountNotFound):
		return fieldError(c, http.StatusNotFound, "User not found", "user_not_found")
	default:
		return w.serverError(c, op, err)
	}
}

func forbidden(c echo.Context) error {
	return fieldError(c, http.StatusForbidden, "token does not belong to this email", "forbidden")
}
