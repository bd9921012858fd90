package http

import (
	"errors"
	"net/http"

	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/pkg/shopsdk"
	"github.com/chocomax/shop/pkg/slogx"
)

// apiError maps a service error onto the response the client sees. Anything
// unrecognised is an internal failure and is logged here, never echoed.
func apiError(r *http.Request, err error) *shopsdk.APIError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return shopsdk.ErrInvalidRequest.WithDescription(verr.Error())
	case errors.Is(err, service.ErrInvalidRequest):
		return shopsdk.ErrInvalidRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return shopsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		return shopsdk.ErrInvalidSecondFactorToken
	case errors.Is(err, service.ErrSecondFactorNotEnabled):
		return shopsdk.ErrSecondFactorNotEnabled
	case errors.Is(err, service.ErrInvalidCode):
		return shopsdk.ErrInvalidCode
	case errors.Is(err, service.ErrTooManyAttempts):
		return shopsdk.ErrTooManyAttempts
	case errors.Is(err, service.ErrMissingToken):
		return shopsdk.ErrMissingToken
	case errors.Is(err, service.ErrDiscriminatorsExhausted):
		return shopsdk.ErrDiscriminatorsExhausted
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return shopsdk.ErrEmailAlreadyExists
	case errors.Is(err, service.ErrInvalidSession):
		return shopsdk.ErrInvalidToken
	case errors.Is(err, service.ErrTOTPAlreadyEnabled):
		return shopsdk.ErrTOTPAlreadyEnabled
	case errors.Is(err, service.ErrProductConflict):
		return shopsdk.ErrProductConflict
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	return shopsdk.ErrServerError
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiError(r, err).WriteError(w)
}

func writeBadJSON(w http.ResponseWriter, err error) {
	shopsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
}
