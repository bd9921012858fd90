package shopsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LoginResult holds exactly one of Session or SecondFactor.
type LoginResult struct {
	Session      *SessionResponse
	SecondFactor *SecondFactorRequired
}

// Login checks email and password. When the account has a second factor the
// result carries a SecondFactorRequired to pass to SubmitSecondFactor.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}

	var marker struct {
		Required bool `json:"2fa_required"`
	}
	if err := json.Unmarshal(body, &marker); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if marker.Required {
		var sf SecondFactorRequired
		if err := json.Unmarshal(body, &sf); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &LoginResult{SecondFactor: &sf}, nil
	}

	var s SessionResponse
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &LoginResult{Session: &s}, nil
}

// SubmitSecondFactor completes a login with a one-time code.
func (c *Client) SubmitSecondFactor(ctx context.Context, token, code string) (*SessionResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login/otp",
		SecondFactorSubmitRequest{Token: token, OTPCode: OTPCode(code)}, "")
	if err != nil {
		return nil, err
	}

	var s SessionResponse
	if err := decodeJSON(resp, &s, http.StatusOK); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, "")
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session token and, when given, its refresh token.
func (c *Client) Logout(ctx context.Context, sessionToken, refreshToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", LogoutRequest{RefreshToken: refreshToken}, sessionToken)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) EnrollTOTP(ctx context.Context, sessionToken string) (*TOTPEnrollResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/2fa/totp/enroll", nil, sessionToken)
	if err != nil {
		return nil, err
	}

	var out TOTPEnrollResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnableTOTP(ctx context.Context, sessionToken, code string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/2fa/totp/enable", TOTPEnableRequest{Code: OTPCode(code)}, sessionToken)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RequestConfirmation asks the server to mail a registration link.
func (c *Client) RequestConfirmation(ctx context.Context, email string) (*ConfirmationResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/email/confirmation", ConfirmationRequest{Email: email}, "")
	if err != nil {
		return nil, err
	}

	var out ConfirmationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
