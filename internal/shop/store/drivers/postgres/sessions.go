package postgres

import (
	"context"
	"encoding/json"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) call(ctx context.Context, procedure string, rec domain.SessionRecord) error {
	id, err := parseUserID(rec.UserID)
	if err != nil {
		return err
	}
	device, err := json.Marshal(rec.DeviceInfo)
	if err != nil {
		return err
	}
	// procedure is one of two constants below, never caller input.
	_, err = r.db.ExecContext(ctx,
		`CALL `+procedure+`($1, $2, $3::jsonb, $4)`,
		id.String(), rec.TokenHash, string(device), rec.IPAddress,
	)
	return mapPgError(err)
}

func (r *sessionsRepo) CreateSessionToken(ctx context.Context, rec domain.SessionRecord) error {
	return r.call(ctx, "create_user_session_token", rec)
}

func (r *sessionsRepo) CreateRefreshToken(ctx context.Context, rec domain.SessionRecord) error {
	return r.call(ctx, "create_user_refresh_token", rec)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.SessionRecord, error) {
	var (
		rec    domain.SessionRecord
		device string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT session_id, user_id, token_hash, device_info, ip_address, created_at
		FROM get_session_by_token_hash($1)`, tokenHash,
	).Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &device, &rec.IPAddress, &rec.CreatedAt)
	if err != nil {
		return domain.SessionRecord{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(device), &rec.DeviceInfo); err != nil {
		return domain.SessionRecord{}, err
	}
	return rec, nil
}

func (r *sessionsRepo) delete(ctx context.Context, function, userID, tokenHash string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	var deleted bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT `+function+`($1, $2)`, id.String(), tokenHash,
	).Scan(&deleted); err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	return nil
}

func (r *sessionsRepo) DeleteSessionToken(ctx context.Context, userID, tokenHash string) error {
	return r.delete(ctx, "delete_user_session_token", userID, tokenHash)
}

func (r *sessionsRepo) DeleteRefreshToken(ctx context.Context, userID, tokenHash string) error {
	return r.delete(ctx, "delete_user_refresh_token", userID, tokenHash)
}
