package service

import (
	"context"
	"database/sql"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/transport/mail"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.CodeMessage
	err  error
}

func (f *fakeMailer) SendCode(ctx context.Context, msg mail.CodeMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) last() mail.CodeMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakeStorage struct {
	uploaded []struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}
	err error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}{bucket: bucket, objectName: objectName, contentType: contentType, size: size})
	if f.err != nil {
		return "", f.err
	}
	return "https://storage/" + bucket + "/" + objectName, nil
}

// failingAccountRepo wraps the memory repository and lets a test inject
// errors into individual calls.
type failingAccountRepo struct {
	*memory.AccountRepository

	createFederatedErr error
	findByEmailErr     error
	findByEmailCalls   int
}

func (f *failingAccountRepo) CreateFederated(ctx context.Context, username, email string) (*domain.Account, error) {
	if f.createFederatedErr != nil {
		return nil, f.createFederatedErr
	}
	return f.AccountRepository.CreateFederated(ctx, username, email)
}

func (f *failingAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.findByEmailCalls++
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	return f.AccountRepository.FindByEmail(ctx, email)
}

type failingDestinationRepo struct {
	*memory.DestinationRepository
	err error
}

func (f *failingDestinationRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Destination, error) {
	return nil, f.err
}

func errNoRows() error { return sql.ErrNoRows }
