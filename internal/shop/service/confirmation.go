package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/mail"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

const DefaultConfirmationTTL = 24 * time.Hour

// ConfirmationMailer delivers the confirmation link. mail.Service implements it.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, to, link string) error
}

type ConfirmationResult struct {
	// Token is the raw confirmation token. Handlers only expose it when
	// configured to, for environments without mail delivery.
	Token     string
	ExpiresAt time.Time
}

// ConfirmationService starts a registration by proving ownership of an email.
type ConfirmationService struct {
	Store  store.Store
	Cipher *cryptox.FieldCipher
	Mailer ConfirmationMailer

	// LinkBase is the page the emailed link points at; the token is added
	// as the "token" query parameter.
	LinkBase string
	TTL      time.Duration
	Now      func() time.Time
}

// RequestConfirmation stores a pending registration for email and mails the
// confirmation link. The address is stored encrypted and looked up by hash.
func (s *ConfirmationService) RequestConfirmation(ctx context.Context, email string) (ConfirmationResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate and normalise the address
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ConfirmationResult{}, invalid("email", "must be a plain email address")
	}
	normalized := cryptox.NormalizeEmail(string(addr))
	emailHash := cryptox.HashEmail(normalized)

	// 2. Encrypt for storage
	encrypted, err := s.Cipher.Encrypt(normalized)
	if err != nil {
		log.Error("failed to encrypt email", slog.Any("error", err))
		return ConfirmationResult{}, fmt.Errorf("encrypt email: %w", err)
	}

	// 3. Generate the token and store the pending registration by fingerprint
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return ConfirmationResult{}, err
	}
	expiresAt := s.now().Add(s.ttl())

	err = s.Store.Registrations().CreatePendingUser(ctx, domain.PendingRegistration{
		EmailEncrypted: encrypted,
		EmailHash:      emailHash,
		TokenHash:      cryptox.FingerprintToken(token),
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		log.Error("failed to create pending user", slog.Any("error", err))
		return ConfirmationResult{}, fmt.Errorf("create pending user: %w", err)
	}

	// 4. Send the link
	link, err := s.link(token)
	if err != nil {
		return ConfirmationResult{}, err
	}
	if err := s.Mailer.SendConfirmation(ctx, normalized, link); err != nil {
		log.Error("failed to send confirmation email", slog.String("email_hash", emailHash), slog.Any("error", err))
		return ConfirmationResult{}, fmt.Errorf("send confirmation: %w", err)
	}

	log.Info("confirmation requested", slog.String("email_hash", emailHash))
	return ConfirmationResult{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *ConfirmationService) link(token string) (string, error) {
	u, err := url.Parse(s.LinkBase)
	if err != nil {
		return "", fmt.Errorf("parse confirmation url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *ConfirmationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ConfirmationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultConfirmationTTL
}
