package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomeAndVersions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServer(t)

	home, err := s.client.Home(ctx)
	require.NoError(t, err)
	require.Equal(t, "Welcome to the ChocoMax Shop API", home.Message)

	v1, err := s.client.APIVersion(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "1.2.0", v1.Version)
	require.Equal(t, APIName, v1.Name)

	v2, err := s.client.APIVersion(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "2.0.0", v2.Version)

	resp, err := http.Get(s.url + "/api/v3/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestServer(t)

	live, err := s.client.Liveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.Readiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.ChallengeStore)

	require.NoError(t, s.store.Close())
	_, err = s.client.Readiness(ctx)
	require.Error(t, err)
}
