package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/pkg/cryptox"
)

var testClient = domain.ClientInfo{
	Device:    domain.DeviceInfo{OS: "Linux", Browser: "Firefox", IsPC: true},
	IPAddress: "203.0.113.7",
}

func TestLoginWithoutSecondFactor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	reg := env.signUp(t, "alice@example.com", "alice", "correct horse")

	res, err := env.login.Login(ctx, LoginRequest{
		Email:    "  Alice@Example.com ",
		Password: "correct horse",
		Client:   testClient,
	})
	require.NoError(t, err)
	require.Nil(t, res.Challenge)
	require.NotNil(t, res.Session)

	s := res.Session
	require.NotEmpty(t, s.SessionToken)
	require.NotEmpty(t, s.RefreshToken)
	require.NotEqual(t, s.SessionToken, s.RefreshToken)
	require.Equal(t, "alice", s.Profile.Username)
	require.Equal(t, reg.Discriminator, s.Profile.Discriminator)

	t.Run("tokens are persisted by fingerprint", func(t *testing.T) {
		rec, err := env.store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(s.SessionToken))
		require.NoError(t, err)
		require.Equal(t, s.Profile.UserID, rec.UserID)
		require.Equal(t, testClient.IPAddress, rec.IPAddress)
		require.Equal(t, testClient.Device, rec.DeviceInfo)

		userID, err := env.sessions.VerifySession(ctx, s.SessionToken)
		require.NoError(t, err)
		require.Equal(t, s.Profile.UserID, userID)
	})

	t.Run("every login issues fresh tokens", func(t *testing.T) {
		again, err := env.login.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct horse"})
		require.NoError(t, err)
		require.NotEqual(t, s.SessionToken, again.Session.SessionToken)
		require.NotEqual(t, s.RefreshToken, again.Session.RefreshToken)
	})
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "bob@example.com", "bob", "hunter22")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "bob@example.com", "hunter23"},
		{"unknown account", "nobody@example.com", "hunter22"},
		{"empty password", "bob@example.com", ""},
		{"empty email", "", "hunter22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.login.Login(ctx, LoginRequest{Email: tt.email, Password: tt.pass})
			require.ErrorIs(t, err, ErrInvalidCredentials)
			require.Nil(t, res.Session)
			require.Nil(t, res.Challenge)
		})
	}
}

func TestLoginWithSecondFactor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "carol@example.com", "carol", "s3cret-pass")
	secret := env.enableTOTP(t, "carol@example.com")

	login := func(t *testing.T) *SecondFactorPrompt {
		t.Helper()
		res, err := env.login.Login(ctx, LoginRequest{Email: "carol@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		require.Nil(t, res.Session)
		require.NotNil(t, res.Challenge)
		return res.Challenge
	}

	t.Run("password opens a challenge", func(t *testing.T) {
		prompt := login(t)
		require.NotEmpty(t, prompt.Token)
		require.Equal(t, []domain.SecondFactorMethod{domain.MethodTOTP}, prompt.Methods)
		require.Equal(t, domain.MethodTOTP, prompt.PreferredMethod)
		require.Equal(t, env.clock.Now().Add(DefaultChallengeTTL), prompt.ExpiresAt)
	})

	t.Run("correct code issues a session once", func(t *testing.T) {
		prompt := login(t)

		session, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.code(t, secret), Client: testClient,
		})
		require.NoError(t, err)
		require.NotEmpty(t, session.SessionToken)
		require.NotEmpty(t, session.RefreshToken)
		require.Equal(t, "carol", session.Profile.Username)

		_, err = env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.code(t, secret),
		})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: "invalidtoken", Code: env.code(t, secret),
		})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)

		_, err = env.login.SubmitSecondFactor(ctx, SecondFactorRequest{Code: env.code(t, secret)})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("expired token", func(t *testing.T) {
		prompt := login(t)
		env.clock.Advance(DefaultChallengeTTL)

		_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.code(t, secret),
		})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("wrong code then right code", func(t *testing.T) {
		prompt := login(t)

		_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.wrongCode(t, secret),
		})
		require.ErrorIs(t, err, ErrInvalidCode)

		_, err = env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.code(t, secret),
		})
		require.NoError(t, err)
	})

	t.Run("too many wrong codes close the challenge", func(t *testing.T) {
		prompt := login(t)
		wrong := env.wrongCode(t, secret)

		for i := 1; i < DefaultMaxAttempts; i++ {
			_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{Token: prompt.Token, Code: wrong})
			require.ErrorIs(t, err, ErrInvalidCode, "attempt %d", i)
		}
		_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{Token: prompt.Token, Code: wrong})
		require.ErrorIs(t, err, ErrTooManyAttempts)

		_, err = env.login.SubmitSecondFactor(ctx, SecondFactorRequest{
			Token: prompt.Token, Code: env.code(t, secret),
		})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("concurrent submissions race for one session", func(t *testing.T) {
		prompt := login(t)
		code := env.code(t, secret)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.login.SubmitSecondFactor(ctx, SecondFactorRequest{Token: prompt.Token, Code: code})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, ErrInvalidOrExpiredToken):
					rejected++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, succeeded)
		require.Equal(t, workers-1, rejected)
	})
}

func TestSubmitSecondFactorWithoutEnabledFactor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "dave@example.com", "dave", "pw-dave")

	// A challenge for an account whose factor was never enabled.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NoError(t, env.challenges.Save(ctx, domain.SecondFactorChallenge{
		Token:     cryptox.FingerprintToken(token),
		EmailHash: cryptox.HashEmail("dave@example.com"),
		ExpiresAt: env.clock.Now().Add(time.Minute),
	}))

	_, err = env.login.SubmitSecondFactor(ctx, SecondFactorRequest{Token: token, Code: "123456"})
	require.ErrorIs(t, err, ErrSecondFactorNotEnabled)
}

func TestVerifySessionRejectsUnknownTokens(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sessions.VerifySession(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidSession)

	_, err = env.sessions.VerifySession(context.Background(), "not-a-session")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "erin@example.com", "erin", "pw-erin")

	res, err := env.login.Login(ctx, LoginRequest{Email: "erin@example.com", Password: "pw-erin"})
	require.NoError(t, err)
	s := res.Session

	require.NoError(t, env.logout.Logout(ctx, s.Profile.UserID, s.SessionToken, s.RefreshToken))

	_, err = env.sessions.VerifySession(ctx, s.SessionToken)
	require.ErrorIs(t, err, ErrInvalidSession)

	err = env.logout.Logout(ctx, s.Profile.UserID, s.SessionToken, "")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestTOTPEnrollment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	reg := env.signUp(t, "frank@example.com", "frank", "pw-frank")

	profile, err := env.store.Accounts().GetProfile(ctx, cryptox.HashEmail("frank@example.com"))
	require.NoError(t, err)

	enrollment, err := env.totp.Enroll(ctx, profile.UserID)
	require.NoError(t, err)
	require.Equal(t, DefaultTOTPIssuer, enrollment.Issuer)
	require.Equal(t, domain.FormatHandle("frank", reg.Discriminator), enrollment.Account)
	require.Contains(t, enrollment.URL, "otpauth://totp/")
	require.Contains(t, enrollment.URL, "secret="+enrollment.Secret)

	stored, enabled, err := env.store.Accounts().GetTOTPSecret(ctx, profile.UserID)
	require.NoError(t, err)
	require.False(t, enabled)
	require.Equal(t, stored, enrollment.Secret)

	require.ErrorIs(t, env.totp.Enable(ctx, profile.UserID, env.wrongCode(t, enrollment.Secret)), ErrInvalidCode)
	require.NoError(t, env.totp.Enable(ctx, profile.UserID, env.code(t, enrollment.Secret)))

	_, err = env.totp.Enroll(ctx, profile.UserID)
	require.ErrorIs(t, err, ErrTOTPAlreadyEnabled)
	require.ErrorIs(t, env.totp.Enable(ctx, profile.UserID, env.code(t, enrollment.Secret)), ErrTOTPAlreadyEnabled)

	_, err = env.totp.Enroll(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrInvalidSession)
}
