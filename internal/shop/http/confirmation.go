package http

import (
	"net/http"

	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/shopsdk"
)

type ConfirmationHandler struct {
	ConfirmationService *service.ConfirmationService

	// ExposeToken adds the raw token to the response.
	ExposeToken bool
}

// ServeHTTP godoc
//
//	@Summary		Request an email confirmation
//	@Description	Stores a pending registration and mails a link carrying the confirmation token.
//	@Description	The token is redeemed at /api/v1/auth/register.
//	@Tags			Email
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.ConfirmationRequest	true	"Email address"
//	@Success		200		{object}	shopsdk.ConfirmationResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Invalid email"
//	@Failure		429		{object}	shopsdk.ErrorResponse	"Rate limited"
//	@Failure		500		{object}	shopsdk.ErrorResponse	"Internal error"
//	@Router			/api/v1/email/confirmation [post].
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.NoCache(w)

	var req shopsdk.ConfirmationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	res, err := h.ConfirmationService.RequestConfirmation(ctx, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := shopsdk.ConfirmationResponse{Detail: "Confirmation email sent"}
	if h.ExposeToken {
		out.ConfirmationToken = res.Token
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
