package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

const (
	contextAccountKey = "account"
	contextTokenKey   = "token"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header").Code("unauthorized"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header").Code("unauthorized"))
			}
			token := strings.TrimSpace(parts[1])
			account, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired token").Code("unauthorized"))
			}
			c.Set(contextAccountKey, account)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

func CurrentAccount(c echo.Context) (*domain.Account, bool) {
	account, ok := c.Get(contextAccountKey).(*domain.Account)
	return account, ok && account != nil
}

// actingAs reports whether the request may act on email. Without an
// authenticated account on the context every email is allowed.
func actingAs(c echo.Context, email string) bool {
	account, ok := CurrentAccount(c)
	if !ok {
		return true
	}
	return account.Email == domain.NormalizeEmail(email)
}
