package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chocomax/shop/internal/shop/challenge"
	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/slogx"

	_ "github.com/chocomax/shop/api/shop" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	challenges challenge.Store

	Sessions            *service.SessionIssuer
	LoginService        *service.LoginService
	RegistrationService *service.RegistrationService
	ConfirmationService *service.ConfirmationService
	LogoutService       *service.LogoutService
	TOTPService         *service.TOTPService
	ProductService      *service.ProductService

	// ExposeConfirmationToken returns the raw confirmation token in the
	// response body. Only for deployments without mail delivery.
	ExposeConfirmationToken bool
}

func NewRouter(
	buildVersion string,
	st store.Store,
	challenges challenge.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		challenges:   challenges,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerHome()
	r.registerAuth()
	r.registerTOTP()
	r.registerEmail()
	r.registerProducts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ChocoMax Shop API
//	@version		2.0.0
//	@description	Storefront API for accounts, sign-in with an optional TOTP second factor, and the product catalog.
//	@description
//	@description				Sessions are opaque tokens; send them as "Authorization: Bearer {session_token}".
//
//	@contact.name				ChocoMax Team
//	@contact.url				https://github.com/chocomax/shop
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerHome() {
	// "GET /{$}" matches only the root, not every unmatched path
	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(HomeHandler),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/{$}",
		httpx.Chain(VersionHandler(APIv1Version),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/v2/{$}",
		httpx.Chain(VersionHandler(APIv2Version),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		LoginService:        r.LoginService,
		RegistrationService: r.RegistrationService,
		LogoutService:       r.LogoutService,
	}

	// POST /login - strict rate limit by IP + email (credential brute force)
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /login/otp - strict rate limit by IP (code guessing)
	r.Mux.Handle("POST /api/v1/auth/login/otp",
		httpx.Chain(http.HandlerFunc(h.HandleSecondFactor),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTOTP() {
	h := &TOTPHandler{TOTPService: r.TOTPService}

	r.Mux.Handle("POST /api/v1/auth/2fa/totp/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Enabling checks a code, so it gets the brute force limit
	r.Mux.Handle("POST /api/v1/auth/2fa/totp/enable",
		httpx.Chain(http.HandlerFunc(h.HandleEnable),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerEmail() {
	h := &ConfirmationHandler{
		ConfirmationService: r.ConfirmationService,
		ExposeToken:         r.ExposeConfirmationToken,
	}

	// Each request sends mail, so limit by IP + address
	r.Mux.Handle("POST /api/v1/email/confirmation",
		httpx.Chain(h,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	r.Mux.Handle("GET /api/v1/products",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/products",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.challenges),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
