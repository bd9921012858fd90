package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

// SessionIssuer mints opaque session and refresh tokens at the end of a
// successful login and resolves session tokens back to accounts.
type SessionIssuer struct {
	Store store.Store
}

// Issue generates a session token and a refresh token and persists both by
// fingerprint with the caller's device and address. The two writes are
// independent and run concurrently.
func (s *SessionIssuer) Issue(
	ctx context.Context,
	profile domain.Profile,
	client domain.ClientInfo,
) (domain.IssuedSession, error) {
	sessionToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.IssuedSession{}, err
	}
	refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.IssuedSession{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.Store.Sessions().CreateSessionToken(gctx, domain.SessionRecord{
			UserID:     profile.UserID,
			TokenHash:  cryptox.FingerprintToken(sessionToken),
			DeviceInfo: client.Device,
			IPAddress:  client.IPAddress,
		})
		if err != nil {
			return fmt.Errorf("persist session token: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.Store.Sessions().CreateRefreshToken(gctx, domain.SessionRecord{
			UserID:     profile.UserID,
			TokenHash:  cryptox.FingerprintToken(refreshToken),
			DeviceInfo: client.Device,
			IPAddress:  client.IPAddress,
		})
		if err != nil {
			return fmt.Errorf("persist refresh token: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slogx.FromContext(ctx).Error("failed to issue session",
			slog.String("user_id", profile.UserID),
			slog.Any("error", err),
		)
		return domain.IssuedSession{}, err
	}

	slogx.FromContext(ctx).Info("session issued",
		slog.String("user_id", profile.UserID),
		slog.String("ip", client.IPAddress),
		slog.String("browser", client.Device.Browser),
	)

	return domain.IssuedSession{
		Profile:      profile,
		SessionToken: sessionToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifySession resolves a bearer session token to its account id.
func (s *SessionIssuer) VerifySession(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidSession
	}
	rec, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	return rec.UserID, nil
}
