package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/media"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

// AccountService owns both account populations and everything hanging off
// an account: favourites, profile and profile image.
type AccountService struct {
	accounts      ports.AccountRepository
	storage       ports.ObjectStorage
	processor     media.Processor
	bucket        string
	maxImageBytes int64
	maxDimension  int
	log           *logger.Logger
}

type AccountServiceConfig struct {
	Accounts      ports.AccountRepository
	Storage       ports.ObjectStorage
	Processor     media.Processor
	Bucket        string
	MaxImageBytes int64
	MaxDimension  int
	Logger        *logger.Logger
}

func NewAccountService(cfg AccountServiceConfig) *AccountService {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &AccountService{
		accounts:      cfg.Accounts,
		storage:       cfg.Storage,
		processor:     cfg.Processor,
		bucket:        cfg.Bucket,
		maxImageBytes: maxBytes,
		maxDimension:  cfg.MaxDimension,
		log:           log.With("service", "account"),
	}
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, ErrMissingFields
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) CheckUserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrAccountNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *AccountService) CreateLocal(ctx context.Context, username, email, passwordHash string) (*domain.Account, error) {
	account, err := s.accounts.CreateLocal(ctx, strings.TrimSpace(username), domain.NormalizeEmail(email), passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	s.log.Info("account created", "account_id", account.ID, "kind", account.Kind)
	return account, nil
}

// CreateOrGetFederated returns the existing account for email, of either kind,
// or creates a federated one. The bool reports whether it was created.
func (s *AccountService) CreateOrGetFederated(ctx context.Context, username, email string) (*domain.Account, bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, false, ErrMissingFields
	}
	existing, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	account, err := s.accounts.CreateFederated(ctx, strings.TrimSpace(username), email)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent sign-up for the same address.
			existing, findErr := s.accounts.FindByEmail(ctx, email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	s.log.Info("account created", "account_id", account.ID, "kind", account.Kind)
	return account, true, nil
}

func (s *AccountService) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !account.IsLocal() {
		return ErrAccountNotFound
	}
	if err := s.accounts.UpdatePassword(ctx, account.ID, passwordHash); err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

func (s *AccountService) AddFavorite(ctx context.Context, email, title string) ([]string, error) {
	title = strings.TrimSpace(title)
	if domain.NormalizeEmail(email) == "" || title == "" {
		return nil, ErrMissingFields
	}
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	favorites, err := s.accounts.AddFavorite(ctx, account.ID, title)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return favorites, nil
}

func (s *AccountService) RemoveFavorite(ctx context.Context, email, title string) ([]string, error) {
	title = strings.TrimSpace(title)
	if domain.NormalizeEmail(email) == "" || title == "" {
		return nil, ErrMissingFields
	}
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	favorites, err := s.accounts.RemoveFavorite(ctx, account.ID, title)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return favorites, nil
}

func (s *AccountService) ListFavorites(ctx context.Context, email string) ([]string, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return account.FavoritePlaces, nil
}

func (s *AccountService) GetProfile(ctx context.Context, email string) (*domain.Account, error) {
	return s.FindByEmail(ctx, email)
}

func (s *AccountService) UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) (*domain.Account, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return account, nil
	}
	updated, err := s.accounts.UpdateProfile(ctx, account.ID, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UploadProfileImage resizes the upload, stores it and points the profile at it.
func (s *AccountService) UploadProfileImage(ctx context.Context, email string, upload media.Upload) (*domain.Account, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if upload.Reader == nil {
		return nil, ErrInvalidImage
	}
	if upload.Size > s.maxImageBytes {
		return nil, ErrImageTooLarge
	}
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reader, size, contentType, err := s.prepareImage(ctx, upload)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("accounts/%s/profile%s", account.ID, media.Extension(contentType))
	url, err := s.storage.Upload(ctx, s.bucket, objectName, contentType, reader, size)
	if err != nil {
		s.log.Error("profile image upload failed", "account_id", account.ID, "error", err)
		return nil, err
	}

	updated, err := s.accounts.UpdateProfile(ctx, account.ID, domain.ProfileUpdate{ProfileImage: &url})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AccountService) prepareImage(ctx context.Context, upload media.Upload) (io.Reader, int64, string, error) {
	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.maxImageBytes+1))
	if err != nil {
		return nil, 0, "", err
	}
	if int64(len(data)) > s.maxImageBytes {
		return nil, 0, "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, 0, "", ErrInvalidImage
	}
	if s.processor == nil {
		return bytes.NewReader(data), int64(len(data)), upload.ContentType, nil
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	}, s.maxDimension)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return nil, 0, "", ErrInvalidImage
		}
		return nil, 0, "", err
	}
	return bytes.NewReader(result.Bytes), int64(len(result.Bytes)), result.ContentType, nil
}
