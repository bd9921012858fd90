package shopsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chocomax/shop/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest          = "invalid_request"
	ErrorCodeValidation              = "validation_error"
	ErrorCodeInvalidCredentials      = "invalid_credentials"
	ErrorCodeInvalidOrExpiredToken   = "invalid_or_expired_token"
	ErrorCodeSecondFactorNotEnabled  = "second_factor_not_enabled"
	ErrorCodeInvalidCode             = "invalid_code"
	ErrorCodeTooManyAttempts         = "too_many_attempts"
	ErrorCodeMissingToken            = "missing_token"
	ErrorCodeDiscriminatorsExhausted = "discriminators_exhausted"
	ErrorCodeEmailAlreadyExists      = "email_already_exists"
	ErrorCodeInvalidToken            = "invalid_token"
	ErrorCodeTOTPAlreadyEnabled      = "totp_already_enabled"
	ErrorCodeProductConflict         = "product_conflict"
	ErrorCodeRateLimited             = "rate_limit_exceeded"
	ErrorCodeServerError             = "server_error"
)

// APIError is an error response of the shop API. Handlers write it with
// WriteError; the client returns it for non-2xx responses.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on the error code so callers can compare against the
// predefined errors with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// WithDescription copies e with a more specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrValidation is used for product payloads that fail schema checks.
	ErrValidation = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeValidation,
		Description: "the request failed validation",
	}

	// ErrInvalidCredentials does not reveal whether the account exists.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "Invalid credentials",
	}

	ErrInvalidSecondFactorToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidOrExpiredToken,
		Description: "Invalid or expired 2FA session token",
	}

	ErrInvalidRegistrationToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOrExpiredToken,
		Description: "Invalid or expired token",
	}

	ErrSecondFactorNotEnabled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeSecondFactorNotEnabled,
		Description: "2FA is not enabled for this user",
	}

	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCode,
		Description: "Invalid 2FA code",
	}

	ErrTooManyAttempts = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeTooManyAttempts,
		Description: "Too many invalid codes, log in again",
	}

	ErrMissingToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMissingToken,
		Description: "Token is required",
	}

	ErrDiscriminatorsExhausted = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeDiscriminatorsExhausted,
		Description: "No discriminators left for this username",
	}

	ErrEmailAlreadyExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailAlreadyExists,
		Description: "Email already registered",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or revoked",
	}

	ErrTOTPAlreadyEnabled = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTOTPAlreadyEnabled,
		Description: "TOTP is already enabled for this user",
	}

	ErrProductConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeProductConflict,
		Description: "Product creation failed due to data conflict. Please check if the product name already exists.",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
