package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/router"
	"github.com/xteonlyone/portfolio/backend/internal/services"
	"github.com/xteonlyone/portfolio/backend/internal/validators"
	"github.com/xteonlyone/portfolio/backend/pkg/config"
	"github.com/xteonlyone/portfolio/backend/pkg/firebase"
	"github.com/xteonlyone/portfolio/backend/pkg/imagehost"
	"github.com/xteonlyone/portfolio/backend/pkg/logger"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"github.com/xteonlyone/portfolio/backend/pkg/ratelimit"
	"go.uber.org/zap"
)

const (
	uploadFolder    = "portfolio"
	shutdownTimeout = 10 * time.Second
)

func main() {
	app := &cli.Command{
		Name:  "server",
		Usage: "Portfolio and guestbook API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "HTTP port, overrides PORT",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "development, staging, production or test; overrides ENV",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate the schema and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the schema and exit",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and opens the databases.
func setup(cmd *cli.Command) (*config.Config, *zap.Logger, *config.DB, error) {
	cfg := config.Load()
	if cmd.IsSet("port") {
		cfg.Port = cmd.String("port")
	}
	if cmd.IsSet("env") {
		cfg.Env = cmd.String("env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	if cfg.EnvFileMissing {
		log.Info("no .env file found, using process environment")
	}

	db, err := config.InitDB(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("initialize databases: %w", err)
	}
	return cfg, log, db, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	_, log, db, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return err
	}
	log.Info("schema migrated")
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, log, db, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return err
	}

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return fmt.Errorf("initialize firebase: %w", err)
	}

	uploader, err := imagehost.New(cfg.CloudinaryURL, uploadFolder)
	if err != nil {
		return err
	}
	if cfg.CloudinaryURL == "" {
		log.Warn("CLOUDINARY_URL not set, image uploads are disabled")
	}

	limits, closeLimits, err := ratelimit.NewStore(cfg.RedisURL, cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	if err != nil {
		return err
	}
	defer closeLimits()

	if cfg.AdminEmail == "" {
		log.Warn("ADMIN_EMAIL not set, admin routes will reject everyone")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)

	router.SetupRoutes(e, router.Dependencies{
		Postgres:   db.Postgres,
		Mongo:      db.Mongo,
		Verifier:   firebaseApp.AuthClient,
		Mailer:     mailer.New(cfg.ResendAPIKey, log),
		Uploader:   uploader,
		RateLimits: limits,
		Tokens:     auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Policy:     auth.NewAdminEmailPolicy(cfg.AdminEmail),
		Mail: services.MailSettings{
			From:      cfg.MailFrom,
			AdminFrom: cfg.AdminMailFrom,
			AppURL:    cfg.AppURL,
		},
		Logger: log,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
