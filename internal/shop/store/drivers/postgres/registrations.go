package postgres

import (
	"context"
	"database/sql"

	"github.com/chocomax/shop/internal/shop/domain"
)

type registrationsRepo struct {
	db dbtx
}

func (r *registrationsRepo) CreatePendingUser(ctx context.Context, p domain.PendingRegistration) error {
	_, err := r.db.ExecContext(ctx,
		`CALL create_pending_user($1, $2, $3, $4)`,
		p.EmailEncrypted, p.EmailHash, p.TokenHash, p.ExpiresAt,
	)
	return mapPgError(err)
}

func (r *registrationsRepo) IsVerificationTokenValid(ctx context.Context, tokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT is_verification_token_valid($1)`, tokenHash).Scan(&ok)
	return ok, err
}

func (r *registrationsRepo) GetUsedDiscriminators(ctx context.Context, username string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT discriminator FROM get_used_discriminators($1)`, username)
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
	err := r.db.QueryRowContext(ctx, `SELECT is_email_available($1)`, tokenHash).Scan(&ok)
	return ok, err
}

func (r *registrationsRepo) RegisterUser(ctx context.Context, a domain.NewAccount) error {
	var languageID sql.NullInt32
	if a.LanguageID != nil {
		languageID = sql.NullInt32{Int32: int32(*a.LanguageID), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`CALL register_user($1, $2, $3, $4, $5, $6)`,
		a.RegistrationTokenHash, a.Username, a.Discriminator, a.PasswordHash, languageID, a.OTPSecret,
	)
	return mapPgError(err)
}

func (r *registrationsRepo) DeleteExpiredPendingUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT delete_expired_pending_users()`).Scan(&n)
	return n, err
}
