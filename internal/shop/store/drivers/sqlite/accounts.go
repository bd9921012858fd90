package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

type accountsRepo struct {
	db  dbtx
	now func() time.Time
}

const profileColumns = `
	u.id, u.username, u.discriminator, COALESCE(l.iso_code, 'en'),
	u.is_email_verified, u.created_at, u.last_login_at`

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
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE email_hash = ?`, emailHash,
	).Scan(&hash)
	if err != nil {
		return "", mapNotFound(err)
	}
	return hash, nil
}

func (r *accountsRepo) GetSecondFactorSecret(
	ctx context.Context,
	emailHash string,
	method domain.SecondFactorMethod,
) (string, error) {
	var secret string
	err := r.db.QueryRowContext(ctx, `
		SELECT f.secret
		FROM user_second_factors f
		JOIN users u ON u.id = f.user_id
		WHERE u.email_hash = ? AND f.method = ? AND f.enabled_at IS NOT NULL`,
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
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.method, f.is_preferred
		FROM user_second_factors f
		JOIN users u ON u.id = f.user_id
		WHERE u.email_hash = ? AND f.enabled_at IS NOT NULL
		ORDER BY f.is_preferred DESC, f.method`,
		emailHash,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.SecondFactorMethodInfo
	for rows.Next() {
		var m domain.SecondFactorMethodInfo
		if err := rows.Scan(&m.Method, &m.IsPreferred); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *accountsRepo) GetProfile(ctx context.Context, emailHash string) (domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, `
		SELECT`+profileColumns+`
		FROM users u
		LEFT JOIN languages l ON l.id = u.language_id
		WHERE u.email_hash = ?`, emailHash))
}

func (r *accountsRepo) GetProfileByID(ctx context.Context, userID string) (domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, `
		SELECT`+profileColumns+`
		FROM users u
		LEFT JOIN languages l ON l.id = u.language_id
		WHERE u.id = ?`, userID))
}

func (r *accountsRepo) GetTOTPSecret(ctx context.Context, userID string) (string, bool, error) {
	var (
		secret  string
		enabled sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT secret, enabled_at FROM user_second_factors
		WHERE user_id = ? AND method = ?`,
		userID, string(domain.MethodTOTP),
	).Scan(&secret, &enabled)
	if err != nil {
		return "", false, mapNotFound(err)
	}
	return secret, enabled.Valid, nil
}

func (r *accountsRepo) EnableTOTP(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_second_factors
		SET enabled_at = COALESCE(enabled_at, ?),
		    is_preferred = 1
		WHERE user_id = ? AND method = ?`,
		r.now(), userID, string(domain.MethodTOTP),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
