package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/otp"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

type authFixture struct {
	svc      *AuthService
	accounts *AccountService
	repo     *memory.AccountRepository
	codes    *otp.Service
	store    *otp.MemoryStore
	mailer   *fakeMailer
	jwt      *util.JWTManager
}

func newAuthServiceForTests(t *testing.T) *authFixture {
	t.Helper()
	repo := memory.NewAccountRepo()
	accounts := NewAccountService(AccountServiceConfig{Accounts: repo})
	store := otp.NewMemoryStore(time.Hour, 0)
	codes := otp.NewService(store, 5*time.Minute, 6)
	mailer := &fakeMailer{}
	jwt := util.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(AuthServiceConfig{
		Accounts: accounts,
		Codes:    codes,
		Mailer:   mailer,
		JWT:      jwt,
	})
	return &authFixture{svc: svc, accounts: accounts, repo: repo, codes: codes, store: store, mailer: mailer, jwt: jwt}
}

func TestRegistrationFlow(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	if err := f.svc.SendRegistrationCode(ctx, " New@Example.com "); err != nil {
		t.Fatalf("SendRegistrationCode: %v", err)
	}
	sent := f.mailer.last()
	if sent.To != "new@example.com" || sent.Purpose != domain.PurposeRegistration || len(sent.Code) != 6 {
		t.Fatalf("unexpected message %+v", sent)
	}
	if sent.TTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl in message, got %s", sent.TTL)
	}

	if err := f.svc.VerifyRegistrationCode(ctx, "new@example.com", "000000x"); !errors.Is(err, otp.ErrCodeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := f.svc.VerifyRegistrationCode(ctx, "NEW@example.com", sent.Code); err != nil {
		t.Fatalf("VerifyRegistrationCode: %v", err)
	}

	res, err := f.svc.SignUp(ctx, "newbie", "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if !res.Created || res.Token == "" || res.Account.Kind != domain.AccountLocal {
		t.Fatalf("unexpected signup result %+v", res)
	}
	if *res.Account.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plaintext")
	}

	claims, err := f.jwt.Parse(res.Token)
	if err != nil || claims.AccountID != res.Account.ID || claims.Email != "new@example.com" {
		t.Fatalf("unexpected claims %+v err=%v", claims, err)
	}
}

func TestSendRegistrationCodeDiscardsOnDeliveryFailure(t *testing.T) {
	f := newAuthServiceForTests(t)
	f.mailer.err = errors.New("smtp down")

	err := f.svc.SendRegistrationCode(context.Background(), "a@example.com")
	if !errors.Is(err, ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}
	if f.store.Len() != 0 {
		t.Fatalf("undelivered code must not stay verifiable")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	if _, err := f.svc.SignUp(ctx, "ann", "ann@example.com", "pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := f.svc.SignUp(ctx, "ann2", "ANN@example.com", "pw2"); !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
	if _, err := f.svc.SignUp(ctx, "", "x@example.com", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestSignInOutcomes(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	if _, err := f.svc.SignUp(ctx, "ann", "ann@example.com", "correct"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := f.repo.CreateFederated(ctx, "Gina", "gina@example.com"); err != nil {
		t.Fatalf("CreateFederated: %v", err)
	}

	if res, err := f.svc.SignIn(ctx, "Ann@Example.com", "correct"); err != nil || res.Created {
		t.Fatalf("expected successful sign in, got %+v %v", res, err)
	}

	cases := []struct {
		email, password string
		want            error
	}{
		{"ann@example.com", "wrong", ErrInvalidCredentials},
		{"nobody@example.com", "correct", ErrInvalidCredentials},
		{"gina@example.com", "anything", ErrInvalidCredentials},
		{"", "pw", ErrMissingFields},
	}
	for _, tc := range cases {
		if _, err := f.svc.SignIn(ctx, tc.email, tc.password); !errors.Is(err, tc.want) {
			t.Fatalf("SignIn(%q): expected %v, got %v", tc.email, tc.want, err)
		}
	}
}

func TestGoogleSignInCreatesOnceThenReuses(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	first, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Username: "Gina", Email: "gina@example.com"})
	if err != nil {
		t.Fatalf("GoogleSignIn: %v", err)
	}
	if !first.Created || first.Account.Kind != domain.AccountFederated || first.Account.PasswordHash != nil {
		t.Fatalf("unexpected first result %+v", first)
	}

	second, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Username: "Gina", Email: "GINA@example.com"})
	if err != nil {
		t.Fatalf("GoogleSignIn: %v", err)
	}
	if second.Created || second.Account.ID != first.Account.ID {
		t.Fatalf("expected existing account, got %+v", second)
	}
}

func TestGoogleSignInReturnsExistingLocalAccount(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	local, err := f.svc.SignUp(ctx, "ann", "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	res, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Username: "Ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("GoogleSignIn: %v", err)
	}
	if res.Created || res.Account.ID != local.Account.ID {
		t.Fatalf("expected the local account back, got %+v", res)
	}
}

func TestGoogleSignInRaceFallsBackToExisting(t *testing.T) {
	repo := &failingAccountRepo{AccountRepository: memory.NewAccountRepo()}
	ctx := context.Background()
	winner, err := repo.AccountRepository.CreateFederated(ctx, "Gina", "gina@example.com")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// The first lookup misses, then the insert collides with the concurrent winner.
	accounts := NewAccountService(AccountServiceConfig{Accounts: &missOnceRepo{failingAccountRepo: repo}})
	account, created, err := accounts.CreateOrGetFederated(ctx, "Gina", "gina@example.com")
	if err != nil {
		t.Fatalf("CreateOrGetFederated: %v", err)
	}
	if created || account.ID != winner.ID {
		t.Fatalf("expected winner account, got %+v created=%v", account, created)
	}
}

type missOnceRepo struct {
	*failingAccountRepo
	missed bool
}

func (m *missOnceRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if !m.missed {
		m.missed = true
		return nil, errNoRows()
	}
	return m.failingAccountRepo.FindByEmail(ctx, email)
}

func TestGoogleSignInVerifiesIDToken(t *testing.T) {
	f := newAuthServiceForTests(t)
	f.svc.googleAudience = "client-id"
	f.svc.validateGoogle = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" || audience != "client-id" {
			return nil, errors.New("bad token")
		}
		return &idtoken.Payload{Claims: map[string]interface{}{"email": "Verified@Example.com", "name": "Vera"}}, nil
	}
	ctx := context.Background()

	if _, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Username: "x", Email: "x@example.com"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("missing token with audience configured: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Email: "x@example.com", IDToken: "bad"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad token: expected ErrInvalidCredentials, got %v", err)
	}

	res, err := f.svc.GoogleSignIn(ctx, GoogleSignInInput{Email: "spoofed@example.com", IDToken: "good"})
	if err != nil {
		t.Fatalf("GoogleSignIn: %v", err)
	}
	if res.Account.Email != "verified@example.com" || res.Account.Username != "Vera" {
		t.Fatalf("token claims must win, got %+v", res.Account)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	if _, err := f.svc.SignUp(ctx, "ann", "ann@example.com", "old-password"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if err := f.svc.RequestPasswordReset(ctx, "nobody@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatalf("no code should be sent for unknown users")
	}

	if err := f.svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	sent := f.mailer.last()
	if sent.Purpose != domain.PurposePasswordReset {
		t.Fatalf("unexpected purpose %s", sent.Purpose)
	}

	// A reset code never completes registration.
	if err := f.svc.VerifyRegistrationCode(ctx, "ann@example.com", sent.Code); !errors.Is(err, otp.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound across purposes, got %v", err)
	}
	if err := f.svc.ConfirmPasswordReset(ctx, "ann@example.com", sent.Code); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}
	if err := f.svc.UpdatePassword(ctx, "ann@example.com", "new-password"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if _, err := f.svc.SignIn(ctx, "ann@example.com", "old-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := f.svc.SignIn(ctx, "ann@example.com", "new-password"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestRequestPasswordResetIgnoresFederatedAccounts(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()
	if _, err := f.repo.CreateFederated(ctx, "Gina", "gina@example.com"); err != nil {
		t.Fatalf("CreateFederated: %v", err)
	}
	if err := f.svc.RequestPasswordReset(ctx, "gina@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := f.svc.UpdatePassword(ctx, "gina@example.com", "pw"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newAuthServiceForTests(t)
	ctx := context.Background()

	res, err := f.svc.SignUp(ctx, "ann", "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	account, err := f.svc.Authenticate(ctx, res.Token)
	if err != nil || account.ID != res.Account.ID {
		t.Fatalf("Authenticate: %+v %v", account, err)
	}
	if _, err := f.svc.Authenticate(ctx, "garbage"); !errors.Is(err, util.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
