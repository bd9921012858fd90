package http

import (
	"errors"
	"net/http"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/shopsdk"
	"github.com/chocomax/shop/pkg/slogx"
)

type AuthHandler struct {
	LoginService        *service.LoginService
	RegistrationService *service.RegistrationService
	LogoutService       *service.LogoutService
}

// HandleLogin godoc
//
//	@Summary		Log in with email and password
//	@Description	Returns a session, or a short lived second factor token when the account has TOTP enabled.
//	@Description	The second factor token is redeemed at /api/v1/auth/login/otp.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	shopsdk.SessionResponse			"Session issued, or shopsdk.SecondFactorRequired when 2fa_required is true"
//	@Failure		400		{object}	shopsdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	shopsdk.ErrorResponse			"Invalid credentials"
//	@Failure		429		{object}	shopsdk.ErrorResponse			"Rate limited"
//	@Failure		500		{object}	shopsdk.ErrorResponse			"Internal error"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.NoCache(w)

	var req shopsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	res, err := h.LoginService.Login(ctx, service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Client:   clientInfo(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if res.Challenge != nil {
		httpx.WriteJSON(w, http.StatusOK, secondFactorResponse(res.Challenge))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(*res.Session))
}

// HandleSecondFactor godoc
//
//	@Summary		Complete a login with a TOTP code
//	@Description	otp_code may be a string or a number; numbers are zero padded to six digits.
//	@Description	The token is single use and expires after five minutes or too many wrong codes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.SecondFactorSubmitRequest	true	"Second factor token and code"
//	@Success		200		{object}	shopsdk.SessionResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Malformed request or 2FA not enabled"
//	@Failure		401		{object}	shopsdk.ErrorResponse	"Invalid token or code"
//	@Failure		429		{object}	shopsdk.ErrorResponse	"Too many attempts"
//	@Failure		500		{object}	shopsdk.ErrorResponse	"Internal error"
//	@Router			/api/v1/auth/login/otp [post].
func (h *AuthHandler) HandleSecondFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.NoCache(w)

	var req shopsdk.SecondFactorSubmitRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	issued, err := h.LoginService.SubmitSecondFactor(ctx, service.SecondFactorRequest{
		Token:  req.Token,
		Code:   string(req.OTPCode),
		Client: clientInfo(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse(issued))
}

// HandleRegister godoc
//
//	@Summary		Register an account
//	@Description	Redeems an email confirmation token. The username is sanitised and given a random free discriminator.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.RegisterRequest	true	"Registration"
//	@Success		200		{object}	shopsdk.RegisterResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Missing, invalid or expired token, or invalid fields"
//	@Failure		409		{object}	shopsdk.ErrorResponse	"Email registered or no discriminator left"
//	@Failure		500		{object}	shopsdk.ErrorResponse	"Internal error"
//	@Router			/api/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	httpx.NoCache(w)

	var req shopsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	res, err := h.RegistrationService.Register(ctx, service.RegisterRequest{
		Token:      req.Token,
		Username:   req.Username,
		Password:   req.Password,
		LanguageID: req.LanguageID,
	})
	if err != nil {
		// A registration token is a request parameter, not a credential
		if errors.Is(err, service.ErrInvalidOrExpiredToken) {
			shopsdk.ErrInvalidRegistrationToken.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	log.Info("account registered", "handle", domain.FormatHandle(res.Username, res.Discriminator))
	httpx.WriteJSON(w, http.StatusOK, shopsdk.RegisterResponse{
		Message:       "User registered successfully",
		Username:      res.Username,
		Discriminator: res.Discriminator,
	})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the bearer session and, when given, its refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	shopsdk.LogoutRequest	false	"Refresh token to revoke"
//	@Success		204
//	@Failure		401	{object}	shopsdk.ErrorResponse	"Invalid session"
//	@Failure		500	{object}	shopsdk.ErrorResponse	"Internal error"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := httpx.UserIDFromContext(ctx)
	token, _ := httpx.SessionTokenFromContext(ctx)

	// The body is optional
	var req shopsdk.LogoutRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadJSON(w, err)
			return
		}
	}

	if err := h.LogoutService.Logout(ctx, userID, token, req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sessionResponse(s domain.IssuedSession) shopsdk.SessionResponse {
	p := s.Profile
	return shopsdk.SessionResponse{
		UserID:          p.UserID,
		Username:        p.Username,
		Discriminator:   p.Discriminator,
		Handle:          p.Handle(),
		LanguageISO:     p.LanguageISO,
		IsEmailVerified: p.IsEmailVerified,
		CreatedAt:       p.CreatedAt,
		LastLoginAt:     p.LastLoginAt,
		SessionToken:    s.SessionToken,
		RefreshToken:    s.RefreshToken,
	}
}

func secondFactorResponse(p *service.SecondFactorPrompt) shopsdk.SecondFactorRequired {
	methods := make([]string, 0, len(p.Methods))
	for _, m := range p.Methods {
		methods = append(methods, string(m))
	}
	return shopsdk.SecondFactorRequired{
		Required:        true,
		Token:           p.Token,
		Methods:         methods,
		PreferredMethod: string(p.PreferredMethod),
	}
}
