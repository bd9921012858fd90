package http

import (
	"net/http"

	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/shopsdk"
	"github.com/chocomax/shop/pkg/slogx"
)

type TOTPHandler struct {
	TOTPService *service.TOTPService
}

// HandleEnroll godoc
//
//	@Summary		Start TOTP enrolment
//	@Description	Returns the account's TOTP secret and an otpauth:// URL for QR codes.
//	@Description	The secret is not checked at login until it is enabled.
//	@Tags			2FA
//	@Produce		json
//	@Success		200	{object}	shopsdk.TOTPEnrollResponse
//	@Failure		400	{object}	shopsdk.ErrorResponse	"TOTP already enabled"
//	@Failure		401	{object}	shopsdk.ErrorResponse	"Invalid session"
//	@Failure		500	{object}	shopsdk.ErrorResponse	"Internal error"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/2fa/totp/enroll [post].
func (h *TOTPHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.NoCache(w)

	userID, _ := httpx.UserIDFromContext(ctx)

	enrollment, err := h.TOTPService.Enroll(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, shopsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleEnable godoc
//
//	@Summary		Enable TOTP
//	@Description	Confirms enrolment with a current code. Later logins require a second factor.
//	@Tags			2FA
//	@Accept			json
//	@Param			request	body	shopsdk.TOTPEnableRequest	true	"Current TOTP code"
//	@Success		204
//	@Failure		400	{object}	shopsdk.ErrorResponse	"Malformed request or already enabled"
//	@Failure		401	{object}	shopsdk.ErrorResponse	"Invalid session or code"
//	@Failure		500	{object}	shopsdk.ErrorResponse	"Internal error"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/2fa/totp/enable [post].
func (h *TOTPHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, _ := httpx.UserIDFromContext(ctx)

	var req shopsdk.TOTPEnableRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	if err := h.TOTPService.Enable(ctx, userID, string(req.Code)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("totp enabled")
	w.WriteHeader(http.StatusNoContent)
}
