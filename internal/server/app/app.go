package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/beamhq/beam/internal/server/http"
	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/internal/server/store/drivers/sqlite"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/jwtx"
	"github.com/beamhq/beam/pkg/slogx"
)

// BuildVersion is stamped at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the identity service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer

	authService        *service.AuthService
	registerService    *service.RegisterService
	inviteService      *service.InviteService
	userService        *service.UserService
	forwardAuthService *service.ForwardAuthService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "beam-server",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	secret, err := loadOrGenerateSecret(app.cfg.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to provision signing secret: %w", err)
	}
	app.signer, err = jwtx.NewSigner(secret, app.cfg.Issuer, app.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("beam server starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"forward_auth", app.cfg.ForwardAuthEnabled,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down beam server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("beam server stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
	}
	app.registerService = &service.RegisterService{Store: app.db}
	app.inviteService = &service.InviteService{Store: app.db}
	app.userService = &service.UserService{
		Store:     app.db,
		AssetsDir: app.cfg.AssetsDir,
	}
	app.forwardAuthService = &service.ForwardAuthService{
		Store:   app.db,
		Signer:  app.signer,
		Enabled: app.cfg.ForwardAuthEnabled,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.signer, app.db, app.logger)

	router.AssetsDir = app.cfg.AssetsDir
	router.AuthService = app.authService
	router.RegisterService = app.registerService
	router.InviteService = app.inviteService
	router.UserService = app.userService
	router.ForwardAuthService = app.forwardAuthService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
