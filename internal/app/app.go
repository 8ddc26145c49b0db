package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/flashurl/internal/adapter/repository/sqldb"
	"github.com/vadimbarashkov/flashurl/internal/config"
	"github.com/vadimbarashkov/flashurl/internal/metrics"
	"github.com/vadimbarashkov/flashurl/internal/qr"
	"github.com/vadimbarashkov/flashurl/internal/shortcode"
	"github.com/vadimbarashkov/flashurl/internal/usecase"
	"github.com/vadimbarashkov/flashurl/pkg/database"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/flashurl/internal/adapter/delivery/http"
)

// NewLogger builds the structured logger shared by the request logger and the app.
func NewLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger("flashurl", httplog.Options{
		LogLevel: cfg.Log.SlogLevel(),
		JSON:     cfg.Env == config.EnvProd,
		Concise:  cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}

// Run opens the storage, creates the schema and serves HTTP until ctx is done.
// Failing to open the storage or create the schema aborts startup.
func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	if err := database.RunMigrations(cfg.Storage.MigrationURL()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	db, err := database.New(
		ctx,
		cfg.Storage.SQLDriver(),
		cfg.Storage.DSN(),
		database.WithConnMaxIdleTime(cfg.Storage.ConnMaxIdleTime),
		database.WithConnMaxLifetime(cfg.Storage.ConnMaxLifetime),
		database.WithMaxIdleConns(cfg.Storage.MaxIdleConns),
		database.WithMaxOpenConns(cfg.Storage.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	logger.Info("storage ready", "driver", cfg.Storage.Driver)

	urlRepo := sqldb.NewURLRepository(db, sqldb.WithQueryTimeout(cfg.Storage.QueryTimeout))
	urlUseCase := usecase.NewURLUseCase(urlRepo, shortcode.NewGenerator(cfg.ShortCodeLength))
	qrRenderer := qr.NewRenderer(cfg.QR.Scale)

	router := delivery.NewRouter(logger, metrics.New(), cfg.BaseURL, urlUseCase, qrRenderer)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		logger.Info("server started", "addr", server.Addr, "base_url", cfg.BaseURL)

		switch {
		case cfg.Env == config.EnvProd && cfg.HTTPServer.TLS():
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
