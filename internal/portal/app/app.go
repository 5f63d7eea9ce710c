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

	httpapi "github.com/placementpro/placementd/internal/portal/http"
	"github.com/placementpro/placementd/internal/portal/media"
	"github.com/placementpro/placementd/internal/portal/obs"
	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/internal/portal/store"
	mongostore "github.com/placementpro/placementd/internal/portal/store/drivers/mongo"
	"github.com/placementpro/placementd/pkg/slogx"
	"github.com/placementpro/placementd/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the portal together: store, token codec, services and
// the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *tokenx.Codec
	media media.Storage

	authService      *service.AuthService
	userService      *service.UserService
	companyService   *service.CompanyService
	jobService       *service.JobService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized and the
// admin account seeded.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "placementd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := tokenx.New(tokenx.Config{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Issuer:        cfg.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	app.codec = codec

	db, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.db = db

	if cfg.MediaEndpoint != "" {
		storage, err := media.NewMinio(ctx, media.Config{
			Endpoint:      cfg.MediaEndpoint,
			AccessKey:     cfg.MediaAccessKey,
			SecretKey:     cfg.MediaSecretKey,
			Bucket:        cfg.MediaBucket,
			UseSSL:        cfg.MediaUseSSL,
			PublicBaseURL: cfg.MediaPublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("media storage: %w", err)
		}
		app.media = storage
	} else {
		app.logger.Warn("no media endpoint configured, uploads disabled")
	}

	obs.Init()
	app.initServices()

	if err := app.bootstrapService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	app.initHTTP()
	return app, nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db, Codec: app.codec}
	app.userService = &service.UserService{Store: app.db, Media: app.media}
	app.companyService = &service.CompanyService{Store: app.db, Media: app.media}
	app.jobService = &service.JobService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.codec, BuildVersion, app.db, app.logger)
	router.AuthService = app.authService
	router.UserService = app.userService
	router.CompanyService = app.companyService
	router.JobService = app.jobService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("placementd starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down placementd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	if err := app.db.Close(ctx); err != nil {
		app.logger.Error("error closing store", slog.Any("error", err))
		return err
	}

	app.logger.Info("placementd stopped")
	return nil
}
