package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/chocomax/shop/internal/shop/challenge"
	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

const (
	DefaultChallengeTTL = 300 * time.Second
	DefaultMaxAttempts  = 5
)

// totpOpts are the parameters every enrolled authenticator uses.
var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type LoginRequest struct {
	Email    string
	Password string
	Client   domain.ClientInfo
}

type SecondFactorRequest struct {
	Token  string
	Code   string
	Client domain.ClientInfo
}

// SecondFactorPrompt is returned instead of a session when the account has a
// second factor. Token is handed to SubmitSecondFactor.
type SecondFactorPrompt struct {
	Token           string
	Methods         []domain.SecondFactorMethod
	PreferredMethod domain.SecondFactorMethod
	ExpiresAt       time.Time
}

// LoginResult holds exactly one of Session or Challenge.
type LoginResult struct {
	Session   *domain.IssuedSession
	Challenge *SecondFactorPrompt
}

type LoginService struct {
	Store      store.Store
	Challenges challenge.Store
	Sessions   *SessionIssuer

	ChallengeTTL time.Duration
	MaxAttempts  int
	Now          func() time.Time
}

func (s *LoginService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LoginService) challengeTTL() time.Duration {
	if s.ChallengeTTL > 0 {
		return s.ChallengeTTL
	}
	return DefaultChallengeTTL
}

func (s *LoginService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultMaxAttempts
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck runs a verification against a throwaway hash so unknown
// accounts cost as much as a wrong password.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = cryptox.HashPassword("chocomax-dummy-password")
	})
	if dummyHash != "" {
		_ = cryptox.VerifyPassword(password, dummyHash)
	}
}

// Login checks the password and either issues a session or, when the account
// has a second factor, opens a short lived challenge.
func (s *LoginService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Derive the identity hash
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	emailHash := cryptox.HashEmail(req.Email)

	// 2. Look up the stored hash
	hash, err := s.Store.Accounts().GetPasswordHash(ctx, emailHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordCheck(req.Password)
			log.Warn("login failed", slog.String("email_hash", emailHash), slog.String("reason", "unknown_account"))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to load password hash", slog.Any("error", err))
		return LoginResult{}, fmt.Errorf("get password hash: %w", err)
	}

	// 3. Verify the password
	if err := cryptox.VerifyPassword(req.Password, hash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login failed", slog.String("email_hash", emailHash), slog.String("reason", "password_mismatch"))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("stored password hash is unusable", slog.String("email_hash", emailHash), slog.Any("error", err))
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}

	// 4. Open a challenge when a second factor is configured
	_, err = s.Store.Accounts().GetSecondFactorSecret(ctx, emailHash, domain.MethodTOTP)
	switch {
	case err == nil:
		prompt, err := s.openChallenge(ctx, emailHash)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Challenge: prompt}, nil
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to load second factor", slog.Any("error", err))
		return LoginResult{}, fmt.Errorf("get second factor: %w", err)
	}

	// 5. No second factor: issue the session
	session, err := s.issue(ctx, emailHash, req.Client)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: &session}, nil
}

func (s *LoginService) openChallenge(ctx context.Context, emailHash string) (*SecondFactorPrompt, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	expiresAt := s.now().Add(s.challengeTTL())

	err = s.Challenges.Save(ctx, domain.SecondFactorChallenge{
		Token:     cryptox.FingerprintToken(token),
		EmailHash: emailHash,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		log.Error("failed to save second factor challenge", slog.Any("error", err))
		return nil, fmt.Errorf("save challenge: %w", err)
	}

	infos, err := s.Store.Accounts().ListSecondFactorMethods(ctx, emailHash)
	if err != nil {
		log.Error("failed to list second factor methods", slog.Any("error", err))
		return nil, fmt.Errorf("list second factor methods: %w", err)
	}

	prompt := &SecondFactorPrompt{Token: token, ExpiresAt: expiresAt}
	for _, info := range infos {
		prompt.Methods = append(prompt.Methods, info.Method)
		if info.IsPreferred && prompt.PreferredMethod == "" {
			prompt.PreferredMethod = info.Method
		}
	}
	if len(prompt.Methods) == 0 {
		prompt.Methods = []domain.SecondFactorMethod{domain.MethodTOTP}
	}
	if prompt.PreferredMethod == "" {
		prompt.PreferredMethod = prompt.Methods[0]
	}

	log.Info("second factor required", slog.String("email_hash", emailHash))
	return prompt, nil
}

// SubmitSecondFactor completes a login opened by Login. A challenge is single
// use and closes after MaxAttempts wrong codes.
func (s *LoginService) SubmitSecondFactor(ctx context.Context, req SecondFactorRequest) (domain.IssuedSession, error) {
	log := slogx.FromContext(ctx)

	token := strings.TrimSpace(req.Token)
	if token == "" {
		return domain.IssuedSession{}, ErrInvalidOrExpiredToken
	}
	key := cryptox.FingerprintToken(token)

	// 1. Resolve the challenge
	ch, err := s.Challenges.Get(ctx, key)
	if err != nil {
		if errors.Is(err, challenge.ErrNotFound) || errors.Is(err, challenge.ErrExpired) {
			log.Warn("second factor rejected", slog.String("reason", "invalid_or_expired_token"))
			return domain.IssuedSession{}, ErrInvalidOrExpiredToken
		}
		log.Error("failed to load challenge", slog.Any("error", err))
		return domain.IssuedSession{}, fmt.Errorf("get challenge: %w", err)
	}

	// 2. Fetch the secret
	secret, err := s.Store.Accounts().GetSecondFactorSecret(ctx, ch.EmailHash, domain.MethodTOTP)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("second factor rejected", slog.String("email_hash", ch.EmailHash), slog.String("reason", "not_enabled"))
			return domain.IssuedSession{}, ErrSecondFactorNotEnabled
		}
		log.Error("failed to load second factor secret", slog.Any("error", err))
		return domain.IssuedSession{}, fmt.Errorf("get second factor secret: %w", err)
	}

	// 3. Verify the code
	ok, _ := totp.ValidateCustom(strings.TrimSpace(req.Code), secret, s.now().UTC(), totpOpts)
	if !ok {
		exceeded, err := s.Challenges.RecordFailure(ctx, key, s.maxAttempts())
		if err != nil && !errors.Is(err, challenge.ErrNotFound) && !errors.Is(err, challenge.ErrExpired) {
			log.Error("failed to record second factor failure", slog.Any("error", err))
			return domain.IssuedSession{}, fmt.Errorf("record failure: %w", err)
		}
		if exceeded {
			log.Warn("second factor challenge closed", slog.String("email_hash", ch.EmailHash), slog.String("reason", "too_many_attempts"))
			return domain.IssuedSession{}, ErrTooManyAttempts
		}
		log.Warn("second factor rejected", slog.String("email_hash", ch.EmailHash), slog.String("reason", "invalid_code"))
		return domain.IssuedSession{}, ErrInvalidCode
	}

	// 4. Consume the challenge, only one concurrent submission wins
	consumed, err := s.Challenges.Consume(ctx, key)
	if err != nil {
		log.Error("failed to consume challenge", slog.Any("error", err))
		return domain.IssuedSession{}, fmt.Errorf("consume challenge: %w", err)
	}
	if !consumed {
		log.Warn("second factor rejected", slog.String("email_hash", ch.EmailHash), slog.String("reason", "already_used"))
		return domain.IssuedSession{}, ErrInvalidOrExpiredToken
	}

	// 5. Issue the session
	return s.issue(ctx, ch.EmailHash, req.Client)
}

func (s *LoginService) issue(ctx context.Context, emailHash string, client domain.ClientInfo) (domain.IssuedSession, error) {
	profile, err := s.Store.Accounts().GetProfile(ctx, emailHash)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load profile", slog.String("email_hash", emailHash), slog.Any("error", err))
		return domain.IssuedSession{}, fmt.Errorf("get profile: %w", err)
	}
	return s.Sessions.Issue(ctx, profile, client)
}
