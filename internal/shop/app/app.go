package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chocomax/shop/internal/shop/challenge"
	httpapi "github.com/chocomax/shop/internal/shop/http"
	"github.com/chocomax/shop/internal/shop/mail"
	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/internal/shop/store/drivers/postgres"
	"github.com/chocomax/shop/internal/shop/store/drivers/sqlite"
	"github.com/chocomax/shop/pkg/cryptox"
	"github.com/chocomax/shop/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v2.0.0"

// Application encapsulates the shop service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	redis      *redis.Client
	challenges challenge.Store
	cipher     *cryptox.FieldCipher
	mailer     *mail.Service

	// Services
	sessions            *service.SessionIssuer
	loginService        *service.LoginService
	registrationService *service.RegistrationService
	confirmationService *service.ConfirmationService
	logoutService       *service.LogoutService
	totpService         *service.TOTPService
	productService      *service.ProductService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "shop",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(cfg.PepperFile)

	aesKey, err := cfg.LoadAESKey()
	if err != nil {
		return nil, err
	}
	if app.cipher, err = cryptox.NewFieldCipherFromHex(aesKey); err != nil {
		return nil, fmt.Errorf("invalid AES secret key: %w", err)
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initChallengeStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initMail(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves HTTP and runs housekeeping until ctx is cancelled or a signal
// arrives, then shuts down gracefully.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.housekeepingService.Start()

	app.logger.Info("shop service starting", "port", app.cfg.Port, "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down shop service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("shop service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initChallengeStore(ctx context.Context) error {
	if app.cfg.ChallengeStore != "redis" {
		app.challenges = challenge.NewMemoryStore()
		return nil
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
	})
	rs := challenge.NewRedisStore(app.redis, "")

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		_ = app.redis.Close()
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	app.challenges = rs
	app.logger.Info("using redis challenge store", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initMail() error {
	from, err := mail.ParseAddress(app.cfg.MailFrom)
	if err != nil {
		return fmt.Errorf("invalid MAIL_FROM: %w", err)
	}

	var sender mail.Sender
	switch app.cfg.MailSender {
	case "smtp":
		sender, err = mail.NewSMTPSender(mail.SMTPSettings{
			Host:     app.cfg.MailServer,
			Port:     app.cfg.MailPort,
			Username: app.cfg.MailUsername,
			Password: app.cfg.MailPassword,
			FromName: app.cfg.MailFromName,
		})
		if err != nil {
			return err
		}
	default:
		sender = mail.NewLogSender(app.logger)
	}

	app.mailer = mail.NewService(mail.NewFSRenderer(mail.Templates()), sender, from)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessions = &service.SessionIssuer{Store: app.db}

	app.loginService = &service.LoginService{
		Store:        app.db,
		Challenges:   app.challenges,
		Sessions:     app.sessions,
		ChallengeTTL: app.cfg.SecondFactorTTL,
		MaxAttempts:  app.cfg.SecondFactorMaxAttempts,
	}
	app.registrationService = &service.RegistrationService{
		Store:      app.db,
		TOTPIssuer: app.cfg.TOTPIssuer,
	}
	app.confirmationService = &service.ConfirmationService{
		Store:    app.db,
		Cipher:   app.cipher,
		Mailer:   app.mailer,
		LinkBase: app.cfg.ConfirmationURL,
		TTL:      app.cfg.ConfirmationTTL,
	}
	app.logoutService = &service.LogoutService{Store: app.db}
	app.totpService = &service.TOTPService{Store: app.db, Issuer: app.cfg.TOTPIssuer}
	app.productService = &service.ProductService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.challenges,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.challenges, app.logger)

	// Wire services to router
	router.Sessions = app.sessions
	router.LoginService = app.loginService
	router.RegistrationService = app.registrationService
	router.ConfirmationService = app.confirmationService
	router.LogoutService = app.logoutService
	router.TOTPService = app.totpService
	router.ProductService = app.productService
	router.ExposeConfirmationToken = app.cfg.ExposeConfirmationToken
	router.ApplyRoutes()

	if app.cfg.ExposeConfirmationToken {
		app.logger.Warn("confirmation tokens are returned in responses; do not enable in production")
	}

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
