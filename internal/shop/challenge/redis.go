package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chocomax/shop/internal/shop/domain"
)

const defaultKeyPrefix = "shop:2fa"

// record is the JSON value stored under each key.
type record struct {
	EmailHash string `json:"email_hash"`
	ExpiresAt int64  `json:"expires_at"` // unix milliseconds
	Attempts  int    `json:"attempts"`
}

// RedisStore keeps challenges in Redis with a TTL matching their expiry,
// which makes them visible to every instance and evicts them without a sweep.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{redis: client, prefix: prefix, now: time.Now}
}

// WithClock replaces the time source. Tests only.
func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

func (s *RedisStore) Save(ctx context.Context, c domain.SecondFactorChallenge) error {
	ttl := c.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrExpired
	}
	data, err := json.Marshal(record{
		EmailHash: c.EmailHash,
		ExpiresAt: c.ExpiresAt.UnixMilli(),
		Attempts:  c.Attempts,
	})
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(c.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

func (s *RedisStore) decode(token string, data []byte) (domain.SecondFactorChallenge, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.SecondFactorChallenge{}, err
	}
	return domain.SecondFactorChallenge{
		Token:     token,
		EmailHash: r.EmailHash,
		ExpiresAt: time.UnixMilli(r.ExpiresAt),
		Attempts:  r.Attempts,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (domain.SecondFactorChallenge, error) {
	data, err := s.redis.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SecondFactorChallenge{}, ErrNotFound
		}
		return domain.SecondFactorChallenge{}, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	c, err := s.decode(token, data)
	if err != nil {
		return domain.SecondFactorChallenge{}, err
	}
	if c.Expired(s.now()) {
		_, _ = s.redis.Del(ctx, s.key(token)).Result()
		return domain.SecondFactorChallenge{}, ErrExpired
	}
	return c, nil
}

// RecordFailure updates the attempt counter under WATCH so concurrent wrong
// codes cannot both slip under the limit.
func (s *RedisStore) RecordFailure(ctx context.Context, token string, maxAttempts int) (bool, error) {
	const maxRetries = 4
	key := s.key(token)

	for i := 0; i < maxRetries; i++ {
		var exceeded bool
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}
			c, err := s.decode(token, data)
			if err != nil {
				return err
			}

			ttl := c.ExpiresAt.Sub(s.now())
			if ttl <= 0 {
				if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				}); err != nil {
					return err
				}
				return ErrExpired
			}

			c.Attempts++
			if c.Attempts >= maxAttempts {
				exceeded = true
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				return err
			}

			updated, err := json.Marshal(record{
				EmailHash: c.EmailHash,
				ExpiresAt: c.ExpiresAt.UnixMilli(),
				Attempts:  c.Attempts,
			})
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, ttl)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, redis.Nil):
				return false, ErrNotFound
			case errors.Is(err, ErrExpired):
				return false, err
			}
			return false, fmt.Errorf("%w: %v", ErrBackend, err)
		}
		return exceeded, nil
	}

	return false, fmt.Errorf("%w: too much contention on %s", ErrBackend, key)
}

func (s *RedisStore) Consume(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Del(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return n > 0, nil
}

// DeleteExpired is a no-op; Redis evicts keys when their TTL elapses.
func (s *RedisStore) DeleteExpired(context.Context) (int, error) {
	return 0, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
