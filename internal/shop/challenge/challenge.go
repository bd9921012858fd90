// Package challenge holds pending second factor challenges between a correct
// password and a correct one-time code. Challenges are short lived, single use
// and limited in failed attempts.
package challenge

import (
	"context"
	"errors"

	"github.com/chocomax/shop/internal/shop/domain"
)

var (
	ErrNotFound = errors.New("challenge: not found")
	ErrExpired  = errors.New("challenge: expired")
	ErrBackend  = errors.New("challenge: backend unavailable")
)

// Store is implemented by MemoryStore and RedisStore. Tokens passed in are
// the values used as keys; callers decide whether that is the raw token or
// its fingerprint.
type Store interface {
	// Save records c until c.ExpiresAt. ErrExpired when that is not in the future.
	Save(ctx context.Context, c domain.SecondFactorChallenge) error

	// Get returns ErrNotFound for unknown tokens and ErrExpired (deleting the
	// entry) once ExpiresAt <= now.
	Get(ctx context.Context, token string) (domain.SecondFactorChallenge, error)

	// RecordFailure counts a wrong code. When the count reaches maxAttempts
	// the challenge is deleted and exceeded is true.
	RecordFailure(ctx context.Context, token string, maxAttempts int) (exceeded bool, err error)

	// Consume deletes the challenge. Exactly one concurrent caller sees true.
	Consume(ctx context.Context, token string) (bool, error)

	// DeleteExpired sweeps expired entries and reports how many were removed.
	DeleteExpired(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
}
