package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

type LogoutService struct {
	Store store.Store
}

// Logout deletes the caller's session token and, when given, the refresh
// token issued with it. A refresh token that is already gone is ignored.
func (s *LogoutService) Logout(ctx context.Context, userID, sessionToken, refreshToken string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Sessions().DeleteSessionToken(ctx, userID, cryptox.FingerprintToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidSession
		}
		log.Error("failed to delete session token", slog.Any("error", err))
		return fmt.Errorf("delete session token: %w", err)
	}

	if refreshToken != "" {
		err := s.Store.Sessions().DeleteRefreshToken(ctx, userID, cryptox.FingerprintToken(refreshToken))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete refresh token", slog.Any("error", err))
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	log.Info("user logged out", slog.String("user_id", userID))
	return nil
}
