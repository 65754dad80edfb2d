package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

func newRedisStore(t *testing.T, grace time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, grace), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, domain.OneTimeCode{
		Recipient: "a@b.com", Purpose: domain.PurposeRegistration, Code: "123456",
		IssuedAt: issued, ExpiresAt: issued.Add(5 * time.Minute),
	}))

	assert.True(t, mr.Exists("otp:registration:a@b.com"))
	assert.Equal(t, 6*time.Minute, mr.TTL("otp:registration:a@b.com"))

	got, err := store.Get(ctx, "a@b.com", domain.PurposeRegistration)
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)
	assert.True(t, got.ExpiresAt.Equal(issued.Add(5*time.Minute)))

	_, err = store.Get(ctx, "a@b.com", domain.PurposePasswordReset)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestRedisStoreCompareAndDelete(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Put(ctx, domain.OneTimeCode{
		Recipient: "a@b.com", Purpose: domain.PurposePasswordReset, Code: "111111",
		IssuedAt: now, ExpiresAt: now.Add(time.Minute),
	}))

	ok, err := store.CompareAndDelete(ctx, "a@b.com", domain.PurposePasswordReset, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("otp:password_reset:a@b.com"))

	ok, err = store.CompareAndDelete(ctx, "a@b.com", domain.PurposePasswordReset, "111111")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists("otp:password_reset:a@b.com"))

	ok, err = store.CompareAndDelete(ctx, "a@b.com", domain.PurposePasswordReset, "111111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreEvictsAfterGrace(t *testing.T) {
	store, mr := newRedisStore(t, 30*time.Second)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Put(ctx, domain.OneTimeCode{
		Recipient: "a@b.com", Purpose: domain.PurposeRegistration, Code: "1",
		IssuedAt: now, ExpiresAt: now.Add(time.Minute),
	}))

	mr.FastForward(time.Minute + 31*time.Second)
	_, err := store.Get(ctx, "a@b.com", domain.PurposeRegistration)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestServiceOverRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	svc := NewService(store, 5*time.Minute, 6, WithGenerator(sequence("654321")))
	ctx := context.Background()

	_, err := svc.Issue(ctx, "a@b.com", domain.PurposeRegistration)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Verify(ctx, "a@b.com", domain.PurposeRegistration, "111111"), ErrCodeMismatch)
	assert.NoError(t, svc.Verify(ctx, "a@b.com", domain.PurposeRegistration, "654321"))
	assert.ErrorIs(t, svc.Verify(ctx, "a@b.com", domain.PurposeRegistration, "654321"), ErrCodeNotFound)
}
