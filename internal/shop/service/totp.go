package service

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/slogx"
)

// TOTPService turns on the authenticator secret generated at registration.
type TOTPService struct {
	Store  store.Store
	Issuer string
	Now    func() time.Time
}

func (s *TOTPService) issuer() string {
	if s.Issuer != "" {
		return s.Issuer
	}
	return DefaultTOTPIssuer
}

// Enroll returns the stored secret as an otpauth URL for the user's
// authenticator app.
func (s *TOTPService) Enroll(ctx context.Context, userID string) (domain.TOTPEnrollment, error) {
	log := slogx.FromContext(ctx)

	secret, enabled, err := s.Store.Accounts().GetTOTPSecret(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TOTPEnrollment{}, ErrInvalidSession
		}
		log.Error("failed to load totp secret", slog.Any("error", err))
		return domain.TOTPEnrollment{}, fmt.Errorf("get totp secret: %w", err)
	}
	if enabled {
		return domain.TOTPEnrollment{}, ErrTOTPAlreadyEnabled
	}

	profile, err := s.Store.Accounts().GetProfileByID(ctx, userID)
	if err != nil {
		log.Error("failed to load profile", slog.Any("error", err))
		return domain.TOTPEnrollment{}, fmt.Errorf("get profile: %w", err)
	}

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(secret))
	if err != nil {
		log.Error("stored totp secret is not base32", slog.String("user_id", userID))
		return domain.TOTPEnrollment{}, fmt.Errorf("decode totp secret: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: profile.Handle(),
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
		Secret:      raw,
	})
	if err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("build totp key: %w", err)
	}

	return domain.TOTPEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  key.Issuer(),
		Account: key.AccountName(),
	}, nil
}

// Enable verifies a code from the authenticator and marks TOTP enabled and
// preferred. Later logins then require the second factor.
func (s *TOTPService) Enable(ctx context.Context, userID, code string) error {
	log := slogx.FromContext(ctx)

	secret, enabled, err := s.Store.Accounts().GetTOTPSecret(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidSession
		}
		log.Error("failed to load totp secret", slog.Any("error", err))
		return fmt.Errorf("get totp secret: %w", err)
	}
	if enabled {
		return ErrTOTPAlreadyEnabled
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if ok, _ := totp.ValidateCustom(strings.TrimSpace(code), secret, now.UTC(), totpOpts); !ok {
		log.Warn("totp enable rejected", slog.String("user_id", userID), slog.String("reason", "invalid_code"))
		return ErrInvalidCode
	}

	if err := s.Store.Accounts().EnableTOTP(ctx, userID); err != nil {
		log.Error("failed to enable totp", slog.Any("error", err))
		return fmt.Errorf("enable totp: %w", err)
	}

	log.Info("totp enabled", slog.String("user_id", userID))
	return nil
}
