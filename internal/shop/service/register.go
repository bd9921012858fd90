package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

const (
	DefaultTOTPIssuer = "ChocoMax"

	maxUsernameLength = 32

	// registerAttempts bounds retries when a concurrent registration takes
	// the discriminator we picked.
	registerAttempts = 3
)

var usernameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeUsername replaces every character outside [a-zA-Z0-9_] with '_'.
func SanitizeUsername(username string) string {
	return usernameDisallowed.ReplaceAllString(username, "_")
}

// AllocateDiscriminator picks uniformly from [0, DiscriminatorSpace) minus
// used. intn must return a value in [0, n); nil uses crypto/rand.
func AllocateDiscriminator(used []int, intn func(n int) (int, error)) (int, error) {
	if intn == nil {
		intn = cryptoIntn
	}

	taken := make([]bool, domain.DiscriminatorSpace)
	for _, d := range used {
		if d >= 0 && d < domain.DiscriminatorSpace {
			taken[d] = true
		}
	}
	free := make([]int, 0, domain.DiscriminatorSpace)
	for d, t := range taken {
		if !t {
			free = append(free, d)
		}
	}
	if len(free) == 0 {
		return 0, ErrDiscriminatorsExhausted
	}

	i, err := intn(len(free))
	if err != nil {
		return 0, fmt.Errorf("pick discriminator: %w", err)
	}
	return free[i], nil
}

func cryptoIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

type RegisterRequest struct {
	Token      string
	Username   string
	Password   string
	LanguageID *int
}

type RegisterResult struct {
	Username      string
	Discriminator int
}

// RegistrationService turns a confirmed email into an account.
type RegistrationService struct {
	Store store.Store

	// TOTPIssuer labels the secret generated for every new account.
	TOTPIssuer string

	// Intn overrides the discriminator randomness in tests.
	Intn func(n int) (int, error)
}

// Register creates an account for the email behind a confirmation token.
//
// The checks run in a fixed order so every failure is distinguishable:
// 1. Token present
// 2. Username and password usable
// 3. Token valid and unexpired
// 4. A discriminator is still free for the username
// 5. The email is not already bound to an account
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Token present
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return RegisterResult{}, ErrMissingToken
	}
	tokenHash := cryptox.FingerprintToken(token)

	// 2. Username and password usable
	username := SanitizeUsername(req.Username)
	if username == "" {
		return RegisterResult{}, invalid("username", "must not be empty")
	}
	if len(username) > maxUsernameLength {
		return RegisterResult{}, invalid("username", "must be at most %d characters", maxUsernameLength)
	}
	if req.Password == "" {
		return RegisterResult{}, invalid("password", "must not be empty")
	}
	if req.LanguageID != nil && *req.LanguageID < 1 {
		return RegisterResult{}, invalid("language_id", "must be positive")
	}

	// 3. Token valid
	valid, err := s.Store.Registrations().IsVerificationTokenValid(ctx, tokenHash)
	if err != nil {
		log.Error("failed to check registration token", slog.Any("error", err))
		return RegisterResult{}, fmt.Errorf("check registration token: %w", err)
	}
	if !valid {
		log.Warn("registration with invalid or expired token")
		return RegisterResult{}, ErrInvalidOrExpiredToken
	}

	// 4. Discriminator
	discriminator, err := s.allocate(ctx, username)
	if err != nil {
		return RegisterResult{}, err
	}

	// 5. Email availability
	available, err := s.Store.Registrations().IsEmailAvailable(ctx, tokenHash)
	if err != nil {
		log.Error("failed to check email availability", slog.Any("error", err))
		return RegisterResult{}, fmt.Errorf("check email availability: %w", err)
	}
	if !available {
		log.Warn("registration for an email that already has an account")
		return RegisterResult{}, ErrEmailAlreadyExists
	}

	passwordHash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}
	secret, err := s.generateSecret(username)
	if err != nil {
		log.Error("failed to generate totp secret", slog.Any("error", err))
		return RegisterResult{}, fmt.Errorf("generate totp secret: %w", err)
	}

	// 6. Persist, retrying with a new discriminator if one was taken meanwhile
	account := domain.NewAccount{
		RegistrationTokenHash: tokenHash,
		Username:              username,
		Discriminator:         discriminator,
		PasswordHash:          passwordHash,
		LanguageID:            req.LanguageID,
		OTPSecret:             secret,
	}
	for attempt := 1; ; attempt++ {
		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			return tx.Registrations().RegisterUser(ctx, account)
		})
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrNotFound) {
			return RegisterResult{}, s.explainMissing(ctx, tokenHash)
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			log.Error("failed to register user", slog.Any("error", err))
			return RegisterResult{}, fmt.Errorf("register user: %w", err)
		}

		available, aerr := s.Store.Registrations().IsEmailAvailable(ctx, tokenHash)
		if aerr == nil && !available {
			return RegisterResult{}, ErrEmailAlreadyExists
		}
		if attempt == registerAttempts {
			log.Error("discriminator collisions persisted", slog.String("username", username))
			return RegisterResult{}, fmt.Errorf("register user: %w", err)
		}
		account.Discriminator, err = s.allocate(ctx, username)
		if err != nil {
			return RegisterResult{}, err
		}
	}

	log.Info("user registered",
		slog.String("username", username),
		slog.Int("discriminator", account.Discriminator),
	)

	return RegisterResult{Username: username, Discriminator: account.Discriminator}, nil
}

func (s *RegistrationService) allocate(ctx context.Context, username string) (int, error) {
	log := slogx.FromContext(ctx)

	used, err := s.Store.Registrations().GetUsedDiscriminators(ctx, username)
	if err != nil {
		log.Error("failed to load used discriminators", slog.Any("error", err))
		return 0, fmt.Errorf("get used discriminators: %w", err)
	}
	d, err := AllocateDiscriminator(used, s.Intn)
	if errors.Is(err, ErrDiscriminatorsExhausted) {
		log.Warn("no discriminator left", slog.String("username", username))
	}
	return d, err
}

// explainMissing tells a consumed or expired token apart from an unknown
// language, both of which surface as a missing row at insert time.
func (s *RegistrationService) explainMissing(ctx context.Context, tokenHash string) error {
	valid, err := s.Store.Registrations().IsVerificationTokenValid(ctx, tokenHash)
	if err != nil {
		return fmt.Errorf("check registration token: %w", err)
	}
	if !valid {
		return ErrInvalidOrExpiredToken
	}
	return invalid("language_id", "unknown language")
}

func (s *RegistrationService) generateSecret(username string) (string, error) {
	issuer := s.TOTPIssuer
	if issuer == "" {
		issuer = DefaultTOTPIssuer
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}
