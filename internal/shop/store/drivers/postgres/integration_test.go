//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

// setupPostgres starts a throwaway PostgreSQL and returns a migrated store.
func setupPostgres(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "shop",
				"POSTGRES_DB":       "shop",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	s, err := NewStore(fmt.Sprintf("postgres://shop:shop@%s:%s/shop?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations(ctx))
	return s
}

func ptr[T any](v T) *T { return &v }

func TestPostgresStoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	regs := s.Registrations()
	require.NoError(t, regs.CreatePendingUser(ctx, domain.PendingRegistration{
		EmailEncrypted: "enc", EmailHash: "h-erin", TokenHash: "tok-erin",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	ok, err := regs.IsVerificationTokenValid(ctx, "tok-erin")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = regs.IsEmailAvailable(ctx, "tok-erin")
	require.NoError(t, err)
	require.True(t, ok)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Registrations().RegisterUser(ctx, domain.NewAccount{
			RegistrationTokenHash: "tok-erin",
			Username:              "erin",
			Discriminator:         1234,
			PasswordHash:          "hash",
			LanguageID:            ptr(3),
			OTPSecret:             "JBSWY3DPEHPK3PXP",
		})
	})
	require.NoError(t, err)

	used, err := regs.GetUsedDiscriminators(ctx, "erin")
	require.NoError(t, err)
	require.Equal(t, []int{1234}, used)

	profile, err := s.Accounts().GetProfile(ctx, "h-erin")
	require.NoError(t, err)
	require.Equal(t, "nl", profile.LanguageISO)

	_, err = s.Accounts().GetSecondFactorSecret(ctx, "h-erin", domain.MethodTOTP)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.Accounts().EnableTOTP(ctx, profile.UserID))

	methods, err := s.Accounts().ListSecondFactorMethods(ctx, "h-erin")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.True(t, methods[0].IsPreferred)

	require.NoError(t, s.Sessions().CreateSessionToken(ctx, domain.SessionRecord{
		UserID: profile.UserID, TokenHash: "sfp", IPAddress: "127.0.0.1",
		DeviceInfo: domain.DeviceInfo{Browser: "Chrome", IsPC: true},
	}))
	rec, err := s.Sessions().GetSessionByTokenHash(ctx, "sfp")
	require.NoError(t, err)
	require.Equal(t, "Chrome", rec.DeviceInfo.Browser)
	require.NoError(t, s.Sessions().DeleteSessionToken(ctx, profile.UserID, "sfp"))

	created, err := s.Products().CreateProduct(ctx, domain.NewProduct{
		Name: "Truffle Cake", Description: "Dark", Type: domain.ProductStandard,
		CategoryID: 1, Price: ptr(31.9), PreparationTimeHours: 48, MinOrderHours: 48,
		TagIDs:       []int{1},
		Attributes:   []domain.ProductAttribute{{Name: "Size", Value: "L"}},
		Translations: []domain.ProductTranslation{{LanguageISO: "fr", Name: "Gâteau truffe"}},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = s.Products().CreateProduct(ctx, domain.NewProduct{
		Name: "Truffle Cake", Description: "Dark", Type: domain.ProductStandard,
		CategoryID: 1, Price: ptr(1.0),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	page, err := s.Products().ListProducts(ctx, domain.ProductQuery{
		Page: 1, Size: 12, LanguageISO: "fr",
		SortBy: domain.SortByName, SortOrder: domain.SortAsc, TagIDs: []int{1},
	})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Gâteau truffe", page.Products[0].Name)
	require.InDelta(t, 31.9, *page.Products[0].Price, 0.001)
	require.Equal(t, 1, page.Products[0].AttributeCount)
}
