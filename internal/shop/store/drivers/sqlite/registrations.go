package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

type registrationsRepo struct {
	db  dbtx
	now func() time.Time
}

func (r *registrationsRepo) CreatePendingUser(ctx context.Context, p domain.PendingRegistration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_users (token_hash, email_encrypted, email_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.TokenHash, p.EmailEncrypted, p.EmailHash, p.ExpiresAt.Unix(), r.now(),
	)
	return mapConstraint(err)
}

func (r *registrationsRepo) IsVerificationTokenValid(ctx context.Context, tokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pending_users WHERE token_hash = ? AND expires_at > ?
		)`, tokenHash, r.now().Unix(),
	).Scan(&ok)
	return ok, err
}

func (r *registrationsRepo) GetUsedDiscriminators(ctx context.Context, username string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT discriminator FROM users WHERE username = ? ORDER BY discriminator`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var used []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		used = append(used, d)
	}
	return used, rows.Err()
}

func (r *registrationsRepo) IsEmailAvailable(ctx context.Context, tokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT NOT EXISTS (
			SELECT 1
			FROM pending_users p
			JOIN users u ON u.email_hash = p.email_hash
			WHERE p.token_hash = ?
		)`, tokenHash,
	).Scan(&ok)
	return ok, err
}

// RegisterUser is several statements; callers run it inside WithTx.
func (r *registrationsRepo) RegisterUser(ctx context.Context, a domain.NewAccount) error {
	now := r.now()

	var emailEncrypted, emailHash string
	err := r.db.QueryRowContext(ctx, `
		SELECT email_encrypted, email_hash FROM pending_users
		WHERE token_hash = ? AND expires_at > ?`,
		a.RegistrationTokenHash, now.Unix(),
	).Scan(&emailEncrypted, &emailHash)
	if err != nil {
		return mapNotFound(err)
	}

	var languageID sql.NullInt64
	if a.LanguageID != nil {
		languageID = sql.NullInt64{Int64: int64(*a.LanguageID), Valid: true}
	}

	userID := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, discriminator, email_encrypted, email_hash,
			password_hash, language_id, is_email_verified, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		userID, a.Username, a.Discriminator, emailEncrypted, emailHash,
		a.PasswordHash, languageID, now,
	)
	if err != nil {
		return mapConstraint(err)
	}

	if a.OTPSecret != "" {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO user_second_factors (user_id, method, secret, is_preferred, created_at)
			VALUES (?, ?, ?, 0, ?)`,
			userID, string(domain.MethodTOTP), a.OTPSecret, now,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}

	// Every pending confirmation for this address is spent once the account exists.
	_, err = r.db.ExecContext(ctx, `DELETE FROM pending_users WHERE email_hash = ?`, emailHash)
	return err
}

func (r *registrationsRepo) DeleteExpiredPendingUsers(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_users WHERE expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ store.Registrations = (*registrationsRepo)(nil)
