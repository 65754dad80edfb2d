package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
)

type AuthHandler struct {
	auth     *service.AuthService
	accounts *service.AccountService
	errs     errorWriter
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, accounts *service.AccountService, rateLimitPerMinute int, log *logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	h := &AuthHandler{
		auth:     auth,
		accounts: accounts,
		errs:     errorWriter{log: log.With("handler", "auth")},
	}

	limited := perIPRateLimit(rateLimitPerMinute)

	e.POST("/send-otp", h.sendOTP, limited)
	e.POST("/verify-otp", h.verifyOTP)
	e.POST("/forgot-password", h.forgotPassword, limited)
	e.POST("/forgot-password-otp-confirm", h.confirmResetOTP)
	e.POST("/update-user-password", h.updatePassword)
	e.POST("/signup", h.signUp)
	e.POST("/signin", h.signIn)
	e.POST("/google/signin", h.googleSignIn)
	e.POST("/check-user-exist", h.checkUserExists)
}

func (h *AuthHandler) sendOTP(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}

	err := h.auth.SendRegistrationCode(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, MessageResponse{Message: "OTP sent successfully"})
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	case errors.Is(err, service.ErrNotificationFailed):
		return messageError(c, http.StatusInternalServerError, "Failed to send OTP", "notification_failed")
	default:
		return h.errs.serverMessage(c, "send otp", err)
	}
}

func (h *AuthHandler) verifyOTP(c echo.Context) error {
	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email and OTP are required", "missing_fields")
	}

	if err := h.auth.VerifyRegistrationCode(c.Request().Context(), req.Email, req.OTP); err != nil {
		return h.errs.writeCodeError(c, "verify otp", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "OTP verified"})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}

	err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, MessageResponse{Message: "OTP sent successfully"})
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	case errors.Is(err, service.ErrAccountNotFound):
		return messageError(c, http.StatusBadRequest, "User not found", "user_not_found")
	case errors.Is(err, service.ErrNotificationFailed):
		return messageError(c, http.StatusInternalServerError, "Failed to send OTP", "notification_failed")
	default:
		return h.errs.serverMessage(c, "forgot password", err)
	}
}

func (h *AuthHandler) confirmResetOTP(c echo.Context) error {
	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email and OTP are required", "missing_fields")
	}

	if err := h.auth.ConfirmPasswordReset(c.Request().Context(), req.Email, req.OTP); err != nil {
		return h.errs.writeCodeError(c, "confirm reset otp", err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "OTP verified"})
}

func (h *AuthHandler) updatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email and new password are required.", "missing_fields")
	}

	err := h.auth.UpdatePassword(c.Request().Context(), req.Email, req.NewPassword)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully."})
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Email and new password are required.", "missing_fields")
	case errors.Is(err, service.ErrWeakPassword):
		return messageError(c, http.StatusBadRequest, "Password must be at most 72 bytes.", "weak_password")
	case errors.Is(err, service.ErrAccountNotFound):
		return messageError(c, http.StatusNotFound, "User not found.", "user_not_found")
	default:
		return h.errs.serverMessage(c, "update password", err)
	}
}

func (h *AuthHandler) signUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Username, email, and password are required.", "missing_fields")
	}

	result, err := h.auth.SignUp(c.Request().Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, newAuthTokenResponse("User registered successfully", result.Account, result.Token, result.ExpiresAt))
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Username, email, and password are required.", "missing_fields")
	case errors.Is(err, service.ErrWeakPassword):
		return messageError(c, http.StatusBadRequest, "Password must be at most 72 bytes.", "weak_password")
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return messageError(c, http.StatusBadRequest, "User already exists", "user_exists")
	default:
		return h.errs.serverMessage(c, "signup", err)
	}
}

func (h *AuthHandler) signIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Missing required fields", "missing_fields")
	}

	result, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, newAuthTokenResponse("Signin successful", result.Account, result.Token, result.ExpiresAt))
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Missing required fields", "missing_fields")
	case errors.Is(err, service.ErrInvalidCredentials):
		return messageError(c, http.StatusUnauthorized, "Invalid credentials", "invalid_credentials")
	default:
		return h.errs.serverMessage(c, "signin", err)
	}
}

func (h *AuthHandler) googleSignIn(c echo.Context) error {
	var req GoogleSignInRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}

	result, err := h.auth.GoogleSignIn(c.Request().Context(), service.GoogleSignInInput{
		Username: req.Username,
		Email:    req.Email,
		IDToken:  req.IDToken,
	})
	switch {
	case err == nil:
		if result.Created {
			return c.JSON(http.StatusCreated, newAuthTokenResponse("User registered successfully", result.Account, result.Token, result.ExpiresAt))
		}
		return c.JSON(http.StatusOK, newAuthTokenResponse("User already exists", result.Account, result.Token, result.ExpiresAt))
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Username and email are required.", "missing_fields")
	case errors.Is(err, service.ErrInvalidCredentials):
		return messageError(c, http.StatusUnauthorized, "Invalid Google credentials", "invalid_credentials")
	default:
		return h.errs.serverMessage(c, "google signin", err)
	}
}

func (h *AuthHandler) checkUserExists(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}

	exists, err := h.accounts.CheckUserExists(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		if exists {
			return c.JSON(http.StatusOK, CheckUserResponse{Message: "User already exists", Exists: true})
		}
		return c.JSON(http.StatusOK, CheckUserResponse{Message: "User is new, proceed with signup"})
	case errors.Is(err, service.ErrMissingFields):
		return messageError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	default:
		return h.errs.serverMessage(c, "check user", err)
	}
}
