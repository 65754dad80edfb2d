package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrAccountNotFound     = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotificationFailed  = errors.New("failed to send otp")
	ErrInvalidBookingDate  = errors.New("booking date must be YYYY-MM-DD")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrStorageUnavailable  = errors.New("image storage is not configured")
	ErrImageTooLarge       = errors.New("image exceeds size limit")
	ErrInvalidImage        = errors.New("invalid image")
	ErrWeakPassword        = errors.New("password is not acceptable")
)

const pgUniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, ports.ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
