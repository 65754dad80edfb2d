package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects and returns their public URL.
type Storage struct {
	client    *minio.Client
	publicURL string
}

// NewStorage builds object URLs from publicURL when set, otherwise from the
// client's endpoint.
func NewStorage(client *minio.Client, publicURL string) *Storage {
	base := strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if base == "" {
		base = strings.TrimRight(client.EndpointURL().String(), "/")
	}
	return &Storage{client: client, publicURL: base}
}

// EnsureBucket creates bucket when it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: bucket exists %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio: make bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: put %s/%s: %w", bucket, objectName, err)
	}
	return ObjectURL(s.publicURL, bucket, objectName), nil
}

func ObjectURL(base, bucket, objectName string) string {
	return base + "/" + bucket + "/" + strings.TrimLeft(objectName, "/")
}

var _ ports.ObjectStorage = (*Storage)(nil)
