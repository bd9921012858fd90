package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/chocomax/shop/internal/shop/challenge"
	"github.com/chocomax/shop/internal/shop/store/drivers/sqlite"
	"github.com/chocomax/shop/pkg/cryptox"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeMailer records confirmation links instead of sending them.
type fakeMailer struct {
	mu    sync.Mutex
	sent  map[string]string
	fails error
}

func (m *fakeMailer) SendConfirmation(_ context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails != nil {
		return m.fails
	}
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[to] = link
	return nil
}

func (m *fakeMailer) linkFor(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[to]
}

type testEnv struct {
	store      *sqlite.Store
	challenges *challenge.MemoryStore
	clock      *fakeClock
	mailer     *fakeMailer

	login    *LoginService
	sessions *SessionIssuer
	register *RegistrationService
	confirm  *ConfirmationService
	totp     *TOTPService
	logout   *LogoutService
	products *ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations(context.Background()))

	key, err := cryptox.GenerateFieldKey()
	require.NoError(t, err)
	cipher, err := cryptox.NewFieldCipherFromHex(key)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Now().UTC()}
	challenges := challenge.NewMemoryStore().WithClock(clock.Now)
	mailer := &fakeMailer{}
	sessions := &SessionIssuer{Store: st}

	return &testEnv{
		store:      st,
		challenges: challenges,
		clock:      clock,
		mailer:     mailer,
		sessions:   sessions,
		login: &LoginService{
			Store:      st,
			Challenges: challenges,
			Sessions:   sessions,
			Now:        clock.Now,
		},
		register: &RegistrationService{Store: st},
		confirm: &ConfirmationService{
			Store:    st,
			Cipher:   cipher,
			Mailer:   mailer,
			LinkBase: "https://shop.test/register",
			Now:      clock.Now,
		},
		totp:     &TOTPService{Store: st, Now: clock.Now},
		logout:   &LogoutService{Store: st},
		products: &ProductService{Store: st},
	}
}

// signUp confirms email and registers an account with it.
func (e *testEnv) signUp(t *testing.T, email, username, password string) RegisterResult {
	t.Helper()
	ctx := context.Background()

	conf, err := e.confirm.RequestConfirmation(ctx, email)
	require.NoError(t, err)

	res, err := e.register.Register(ctx, RegisterRequest{
		Token:    conf.Token,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return res
}

// enableTOTP turns on the second factor for the account behind email and
// returns its secret.
func (e *testEnv) enableTOTP(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()

	profile, err := e.store.Accounts().GetProfile(ctx, cryptox.HashEmail(email))
	require.NoError(t, err)

	enrollment, err := e.totp.Enroll(ctx, profile.UserID)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, e.clock.Now())
	require.NoError(t, err)
	require.NoError(t, e.totp.Enable(ctx, profile.UserID, code))
	return enrollment.Secret
}

func (e *testEnv) code(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, e.clock.Now())
	require.NoError(t, err)
	return code
}

// wrongCode returns a six digit code not accepted anywhere in the skew window.
func (e *testEnv) wrongCode(t *testing.T, secret string) string {
	t.Helper()
	valid := map[string]bool{}
	for _, d := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		c, err := totp.GenerateCode(secret, e.clock.Now().Add(d))
		require.NoError(t, err)
		valid[c] = true
	}
	for i := 0; ; i++ {
		c := fmt.Sprintf("%06d", i)
		if !valid[c] {
			return c
		}
	}
}
