//go:build e2e

package shop_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/chocomax/shop/pkg/shopsdk"
)

/*
 * Container setup and shared flows for the shop service end-to-end tests.
 * The image is built once from cmd/shop/Dockerfile.
 */

const (
	testImageName = "chocomax-shop-test:latest"
	testAESKey    = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
)

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Shop Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Shop Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/shop/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // the image might not exist
}

// relaxedLimits lifts the strict and moderate limits so flows with many
// requests do not trip them.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// setupShopContainer starts the service with relaxed rate limits.
func setupShopContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startShop(t, relaxedLimits)
}

// setupShopContainerWithDefaultRateLimits starts the service with the
// production rate limits, for tests of the limiter itself.
func setupShopContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startShop(t, nil)
}

func startShop(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":                       "test",
		"LOG_LEVEL":                 "info",
		"LOG_FORMAT":                "json",
		"AES_SECRET_KEY":            testAESKey,
		"EXPOSE_CONFIRMATION_TOKEN": "true",
		"MAIL_SENDER":               "log",
	}
	maps.Copy(env, extraEnv)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// signUp confirms email and registers an account with it.
func signUp(t *testing.T, client *shopsdk.Client, email, username, password string) *shopsdk.RegisterResponse {
	t.Helper()
	ctx := context.Background()

	conf, err := client.RequestConfirmation(ctx, email)
	require.NoError(t, err, "Confirmation should succeed")
	require.NotEmpty(t, conf.ConfirmationToken, "Token should be exposed in test mode")

	res, err := client.Register(ctx, shopsdk.RegisterRequest{
		Token:    conf.ConfirmationToken,
		Username: username,
		Password: password,
	})
	require.NoError(t, err, "Registration should succeed")
	return res
}

// login logs in an account without a second factor.
func login(t *testing.T, client *shopsdk.Client, email, password string) *shopsdk.SessionResponse {
	t.Helper()

	res, err := client.Login(context.Background(), email, password)
	require.NoError(t, err, "Login should succeed")
	require.NotNil(t, res.Session, "Login should issue a session")
	return res.Session
}

// enableTOTP turns on the second factor and returns its secret.
func enableTOTP(t *testing.T, client *shopsdk.Client, sessionToken string) string {
	t.Helper()
	ctx := context.Background()

	enrollment, err := client.EnrollTOTP(ctx, sessionToken)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, client.EnableTOTP(ctx, sessionToken, code))
	return enrollment.Secret
}

// assertStatus checks that err is an API error with the given HTTP status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *shopsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got: %v", err)
	require.Equal(t, status, apiErr.StatusCode, "unexpected status for %v", err)
}
