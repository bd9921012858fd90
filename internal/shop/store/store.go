package store

import (
	"context"
	"errors"

	"github.com/chocomax/shop/internal/shop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a transaction can only be opened from the root store.
type Store interface {
	Accounts() Accounts
	Sessions() Sessions
	Registrations() Registrations
	Products() Products

	ApplyMigrations(ctx context.Context) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns nil
	// and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts resolves login credentials and profiles by email hash.
type Accounts interface {
	// GetPasswordHash returns the stored argon2id hash, or ErrNotFound.
	GetPasswordHash(ctx context.Context, emailHash string) (string, error)

	// GetSecondFactorSecret returns the enabled secret for method, or
	// ErrNotFound when the account has no such factor enabled.
	GetSecondFactorSecret(ctx context.Context, emailHash string, method domain.SecondFactorMethod) (string, error)

	// ListSecondFactorMethods returns enabled methods; empty when none.
	ListSecondFactorMethods(ctx context.Context, emailHash string) ([]domain.SecondFactorMethodInfo, error)

	// GetProfile returns the public profile of the account behind emailHash.
	GetProfile(ctx context.Context, emailHash string) (domain.Profile, error)

	// GetProfileByID returns the public profile of an account id.
	GetProfileByID(ctx context.Context, userID string) (domain.Profile, error)

	// GetTOTPSecret returns the stored TOTP secret and whether it is enabled.
	GetTOTPSecret(ctx context.Context, userID string) (secret string, enabled bool, err error)

	// EnableTOTP marks TOTP enabled and preferred for the account.
	EnableTOTP(ctx context.Context, userID string) error
}

// Sessions persists issued session and refresh tokens by fingerprint.
type Sessions interface {
	// CreateSessionToken stores the session and stamps the account's last login.
	CreateSessionToken(ctx context.Context, rec domain.SessionRecord) error
	CreateRefreshToken(ctx context.Context, rec domain.SessionRecord) error

	// GetSessionByTokenHash returns ErrNotFound for unknown sessions.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.SessionRecord, error)

	DeleteSessionToken(ctx context.Context, userID, tokenHash string) error
	DeleteRefreshToken(ctx context.Context, userID, tokenHash string) error
}

// Registrations covers pending email confirmations and account creation.
type Registrations interface {
	// CreatePendingUser stores a pending registration. It does not check
	// whether the email already belongs to an account; registration does.
	CreatePendingUser(ctx context.Context, p domain.PendingRegistration) error

	// IsVerificationTokenValid reports whether the token fingerprint matches
	// an unexpired pending registration.
	IsVerificationTokenValid(ctx context.Context, tokenHash string) (bool, error)

	// GetUsedDiscriminators lists discriminators already taken for username.
	GetUsedDiscriminators(ctx context.Context, username string) ([]int, error)

	// IsEmailAvailable reports whether the email behind the pending
	// registration is not yet bound to an account.
	IsEmailAvailable(ctx context.Context, tokenHash string) (bool, error)

	// RegisterUser creates the account and consumes the pending registration.
	// ErrAlreadyExists on a username#discriminator or email collision.
	RegisterUser(ctx context.Context, a domain.NewAccount) error

	// DeleteExpiredPendingUsers is housekeeping.
	DeleteExpiredPendingUsers(ctx context.Context) (int64, error)
}

// Products is the catalog.
type Products interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error)

	// CreateProduct returns ErrAlreadyExists on a duplicate name and
	// ErrNotFound when the category, a tag or a language does not exist.
	CreateProduct(ctx context.Context, p domain.NewProduct) (domain.CreatedProduct, error)
}
