package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/otp"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/transport/mail"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

type AuthResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
	// Created is set when the call created the account.
	Created bool
}

type GoogleSignInInput struct {
	Username string
	Email    string
	IDToken  string
}

type googleValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthService struct {
	accounts       *AccountService
	codes          *otp.Service
	mailer         mail.Sender
	jwt            *util.JWTManager
	googleAudience string
	validateGoogle googleValidator
	log            *logger.Logger
}

type AuthServiceConfig struct {
	Accounts       *AccountService
	Codes          *otp.Service
	Mailer         mail.Sender
	JWT            *util.JWTManager
	GoogleAudience string
	Logger         *logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthService{
		accounts:       cfg.Accounts,
		codes:          cfg.Codes,
		mailer:         cfg.Mailer,
		jwt:            cfg.JWT,
		googleAudience: strings.TrimSpace(cfg.GoogleAudience),
		validateGoogle: idtoken.Validate,
		log:            log.With("service", "auth"),
	}
}

// SendRegistrationCode issues and mails a registration code. If delivery
// fails the code is discarded so it can never be verified.
func (s *AuthService) SendRegistrationCode(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}
	return s.issueAndSend(ctx, email, domain.PurposeRegistration)
}

func (s *AuthService) VerifyRegistrationCode(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return ErrMissingFields
	}
	return s.codes.Verify(ctx, email, domain.PurposeRegistration, strings.TrimSpace(code))
}

func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		if errors.Is(err, util.ErrEmptyPassword) {
			return nil, ErrMissingFields
		}
		if errors.Is(err, util.ErrPasswordTooLong) {
			return nil, ErrWeakPassword
		}
		return nil, err
	}

	account, err := s.accounts.CreateLocal(ctx, username, email, hash)
	if err != nil {
		return nil, err
	}
	return s.issueToken(account, true)
}

// SignIn only authenticates local accounts; federated accounts have no
// password and always fail here.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	if domain.NormalizeEmail(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsLocal() || !util.VerifyPassword(password, *account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(account, false)
}

// GoogleSignIn returns the account for the address, creating a federated one
// on first use. When an ID token is supplied, or an audience is configured,
// the token is verified and its email wins over the client-supplied one.
func (s *AuthService) GoogleSignIn(ctx context.Context, in GoogleSignInInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	token := strings.TrimSpace(in.IDToken)
	if token == "" && s.googleAudience != "" {
		return nil, ErrInvalidCredentials
	}
	if token != "" {
		payload, err := s.validateGoogle(ctx, token, s.googleAudience)
		if err != nil {
			s.log.Warn("google id token rejected", "error", err)
			return nil, ErrInvalidCredentials
		}
		claimed, _ := payload.Claims["email"].(string)
		if claimed = domain.NormalizeEmail(claimed); claimed == "" {
			return nil, ErrInvalidCredentials
		}
		email = claimed
		if username == "" {
			username, _ = payload.Claims["name"].(string)
		}
	}

	if username == "" || email == "" {
		return nil, ErrMissingFields
	}

	account, created, err := s.accounts.CreateOrGetFederated(ctx, username, email)
	if err != nil {
		return nil, err
	}
	return s.issueToken(account, created)
}

// RequestPasswordReset mails a reset code to an existing local account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return ErrMissingFields
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !account.IsLocal() {
		return ErrAccountNotFound
	}
	return s.issueAndSend(ctx, email, domain.PurposePasswordReset)
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return ErrMissingFields
	}
	return s.codes.Verify(ctx, email, domain.PurposePasswordReset, strings.TrimSpace(code))
}

func (s *AuthService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if domain.NormalizeEmail(email) == "" || newPassword == "" {
		return ErrMissingFields
	}
	hash, err := util.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, util.ErrPasswordTooLong) {
			return ErrWeakPassword
		}
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	s.log.Info("password updated")
	return nil
}

// Authenticate resolves a bearer token to its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	if account.ID != claims.AccountID {
		return nil, util.ErrInvalidToken
	}
	return account, nil
}

func (s *AuthService) issueAndSend(ctx context.Context, email string, purpose domain.Purpose) error {
	code, err := s.codes.Issue(ctx, email, purpose)
	if err != nil {
		return err
	}

	err = s.mailer.SendCode(ctx, mail.CodeMessage{
		To:      email,
		Purpose: purpose,
		Code:    code.Code,
		TTL:     code.ExpiresAt.Sub(code.IssuedAt),
	})
	if err != nil {
		s.log.Error("otp delivery failed", "purpose", purpose, "error", err)
		if discardErr := s.codes.Discard(context.WithoutCancel(ctx), code); discardErr != nil {
			s.log.Error("discarding undelivered otp failed", "purpose", purpose, "error", discardErr)
		}
		return ErrNotificationFailed
	}
	s.log.Info("otp sent", "purpose", purpose)
	return nil
}

func (s *AuthService) issueToken(account *domain.Account, created bool) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(account.ID, account.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: expiresAt, Created: created}, nil
}
