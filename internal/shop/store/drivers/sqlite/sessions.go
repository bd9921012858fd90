package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/idx"
)

type sessionsRepo struct {
	db  dbtx
	now func() time.Time
}

func (r *sessionsRepo) insert(ctx context.Context, table string, rec domain.SessionRecord) error {
	device, err := json.Marshal(rec.DeviceInfo)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = idx.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}

	// table is one of two constants below, never caller input.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, user_id, token_hash, device_info, ip_address, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.TokenHash, string(device), rec.IPAddress, rec.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) CreateSessionToken(ctx context.Context, rec domain.SessionRecord) error {
	if err := r.insert(ctx, "user_session_tokens", rec); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, r.now(), rec.UserID)
	return err
}

func (r *sessionsRepo) CreateRefreshToken(ctx context.Context, rec domain.SessionRecord) error {
	return r.insert(ctx, "user_refresh_tokens", rec)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.SessionRecord, error) {
	var (
		rec    domain.SessionRecord
		device string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, device_info, ip_address, created_at
		FROM user_session_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &device, &rec.IPAddress, &rec.CreatedAt)
	if err != nil {
		return domain.SessionRecord{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(device), &rec.DeviceInfo); err != nil {
		return domain.SessionRecord{}, err
	}
	return rec, nil
}

func (r *sessionsRepo) delete(ctx context.Context, table, userID, tokenHash string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND token_hash = ?`, userID, tokenHash)
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

func (r *sessionsRepo) DeleteSessionToken(ctx context.Context, userID, tokenHash string) error {
	return r.delete(ctx, "user_session_tokens", userID, tokenHash)
}

func (r *sessionsRepo) DeleteRefreshToken(ctx context.Context, userID, tokenHash string) error {
	return r.delete(ctx, "user_refresh_tokens", userID, tokenHash)
}
