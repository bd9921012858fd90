package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

type accountsRepo struct {
	db dbtx
}

// parseUserID rejects ids that cannot exist so malformed input reads as
// not found instead of a SQL type error.
func parseUserID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return u, nil
}

func scanProfile(row *sql.Row) (domain.Profile, error) {
	var (
		p         domain.Profile
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&p.UserID, &p.Username, &p.Discriminator, &p.LanguageISO,
		&p.IsEmailVerified, &p.CreatedAt, &lastLogin,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.LastLoginAt = mapNullTimePtr(lastLogin)
	return p, nil
}

func (r *accountsRepo) GetPasswordHash(ctx context.Context, emailHash string) (string, error) {
	var hash sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT get_password_hash_by_email_hash($1)`, emailHash,
	).Scan(&hash)
	if err != nil {
		return "", err
	}
	if !hash.Valid {
		return "", store.ErrNotFound
	}
	return hash.String, nil
}

func (r *accountsRepo) GetSecondFactorSecret(
	ctx context.Context,
	emailHash string,
	method domain.SecondFactorMethod,
) (string, error) {
	var secret string
	err := r.db.QueryRowContext(ctx,
		`SELECT authentication_secret FROM get_user_2fa_secret_by_email_hash($1, $2)`,
		emailHash, string(method),
	).Scan(&secret)
	if err != nil {
		return "", mapNotFound(err)
	}
	return secret, nil
}

func (r *accountsRepo) ListSecondFactorMethods(
	ctx context.Context,
	emailHash string,
) ([]domain.SecondFactorMethodInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT authentication_method, is_preferred FROM get_user_2fa_methods_by_email_hash($1)`,
		emailHash,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.SecondFactorMethodInfo
	for rows.Next() {
		var (
			method string
			m      domain.SecondFactorMethodInfo
		)
		if err := rows.Scan(&method, &m.IsPreferred); err != nil {
			return nil, err
		}
		m.Method = domain.SecondFactorMethod(method)
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *accountsRepo) GetProfile(ctx context.Context, emailHash string) (domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, `
		SELECT user_id, username, discriminator, language_iso, is_email_verified, created_at, last_login_at
		FROM get_user_info_by_email_hash($1)`, emailHash))
}

func (r *accountsRepo) GetProfileByID(ctx context.Context, userID string) (domain.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return scanProfile(r.db.QueryRowContext(ctx, `
		SELECT user_id, username, discriminator, language_iso, is_email_verified, created_at, last_login_at
		FROM get_user_info_by_id($1)`, id.String()))
}

func (r *accountsRepo) GetTOTPSecret(ctx context.Context, userID string) (string, bool, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return "", false, err
	}
	var (
		secret  string
		enabled bool
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT secret, enabled FROM get_user_totp_secret($1)`, id.String(),
	).Scan(&secret, &enabled)
	if err != nil {
		return "", false, mapNotFound(err)
	}
	return secret, enabled, nil
}

func (r *accountsRepo) EnableTOTP(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	var updated bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT enable_user_totp($1)`, id.String(),
	).Scan(&updated); err != nil {
		return err
	}
	if !updated {
		return store.ErrNotFound
	}
	return nil
}
