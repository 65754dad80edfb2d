package otp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

const defaultKeyPrefix = "otp"

// compareAndDelete deletes KEYS[1] only when its "code" field equals ARGV[1].
var compareAndDelete = redis.NewScript(`
if redis.call("HGET", KEYS[1], "code") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore shares codes across API replicas. Each entry is a hash whose key
// lives for the code's TTL plus the grace window, so expired-but-present
// entries still report ErrCodeExpired before Redis evicts them.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	grace  time.Duration
}

func NewRedisStore(client redis.UniversalClient, grace time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: defaultKeyPrefix, grace: grace}
}

// NewRedisClient dials addr and pings it before returning.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(recipient string, purpose domain.Purpose) string {
	return s.prefix + ":" + string(purpose) + ":" + recipient
}

func (s *RedisStore) Put(ctx context.Context, code domain.OneTimeCode) error {
	key := s.key(code.Recipient, code.Purpose)
	ttl := code.ExpiresAt.Sub(code.IssuedAt) + s.grace
	if ttl <= 0 {
		ttl = time.Second
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", code.Code,
			"issued_at", strconv.FormatInt(code.IssuedAt.UnixNano(), 10),
			"expires_at", strconv.FormatInt(code.ExpiresAt.UnixNano(), 10),
		)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, recipient string, purpose domain.Purpose) (*domain.OneTimeCode, error) {
	fields, err := s.client.HGetAll(ctx, s.key(recipient, purpose)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrCodeNotFound
	}

	issued, err := parseUnixNano(fields["issued_at"])
	if err != nil {
		return nil, fmt.Errorf("otp: decode issued_at: %w", err)
	}
	expires, err := parseUnixNano(fields["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("otp: decode expires_at: %w", err)
	}
	return &domain.OneTimeCode{
		Recipient: recipient,
		Purpose:   purpose,
		Code:      fields["code"],
		IssuedAt:  issued,
		ExpiresAt: expires,
	}, nil
}

func (s *RedisStore) CompareAndDelete(ctx context.Context, recipient string, purpose domain.Purpose, code string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, s.client, []string{s.key(recipient, purpose)}, code).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n == 1, nil
}

func parseUnixNano(raw string) (time.Time, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, n), nil
}

var _ Store = (*RedisStore)(nil)
