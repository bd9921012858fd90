package shopsdk

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Home(ctx context.Context) (*WelcomeResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/", nil, "")
	if err != nil {
		return nil, err
	}

	var out WelcomeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// APIVersion reports the name and version of API major version v (1 or 2).
func (c *Client) APIVersion(ctx context.Context, v int) (*VersionResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v%d/", v), nil, "")
	if err != nil {
		return nil, err
	}

	var out VersionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Liveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/livez", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/readyz", nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
