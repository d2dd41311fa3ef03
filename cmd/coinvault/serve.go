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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/coinvault/internal/auth"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/events"
	httpapi "github.com/nikolayk812/coinvault/internal/http"
	"github.com/nikolayk812/coinvault/internal/identity"
	"github.com/nikolayk812/coinvault/internal/migrations"
	"github.com/nikolayk812/coinvault/internal/port"
	"github.com/nikolayk812/coinvault/internal/repository"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return err
	}

	if cfg.Database.RunMigrations {
		if err := migrations.Up(cfg.Database.DSN, logger.Named("migrations")); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	products, err := repository.NewProduct(pool)
	if err != nil {
		return fmt.Errorf("repository.NewProduct: %w", err)
	}
	categories, err := repository.NewCategory(pool)
	if err != nil {
		return fmt.Errorf("repository.NewCategory: %w", err)
	}
	orders, err := repository.NewOrder(pool)
	if err != nil {
		return fmt.Errorf("repository.NewOrder: %w", err)
	}
	profiles, err := repository.NewProfile(pool)
	if err != nil {
		return fmt.Errorf("repository.NewProfile: %w", err)
	}
	cartStorage, err := repository.NewCartStorage(pool)
	if err != nil {
		return fmt.Errorf("repository.NewCartStorage: %w", err)
	}

	publisher, closePublisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Warn("close publisher", zap.Error(err))
		}
	}()

	catalogSvc, err := service.NewCatalog(products, categories, logger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("service.NewCatalog: %w", err)
	}

	carts := cart.NewRegistry(cartStorage, cfg.Cart.IdleTTL, cart.WithLogger(logger.Named("cart")), cart.WithCurrency(unit))
	go carts.Run(ctx, 0)

	checkout, err := service.NewCheckout(carts, orders, publisher, catalogSvc, logger.Named("checkout"))
	if err != nil {
		return fmt.Errorf("service.NewCheckout: %w", err)
	}

	admin, err := service.NewAdmin(products, orders, publisher, catalogSvc, logger.Named("admin"), service.WithAdminCurrency(unit))
	if err != nil {
		return fmt.Errorf("service.NewAdmin: %w", err)
	}

	idp, err := identity.New(cfg.Auth.URL, cfg.Auth.APIKey,
		identity.WithHTTPClient(&http.Client{Timeout: cfg.Auth.Timeout}),
		identity.WithLogger(logger.Named("identity")))
	if err != nil {
		return fmt.Errorf("identity.New: %w", err)
	}

	sessions := auth.NewSessions()
	go sessions.Run(ctx, sessionSweepInterval)

	authSvc, err := auth.NewService(idp, profiles, sessions, logger.Named("auth"))
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	h, err := httpapi.NewHandler(httpapi.Deps{
		Catalog:  catalogSvc,
		Checkout: checkout,
		Admin:    admin,
		Auth:     authSvc,
		Carts:    carts,
		Currency: unit,
		Logger:   logger.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewHandler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(h),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newPublisher connects to the broker when one is configured. Without one
// events are dropped.
func newPublisher() (port.EventPublisher, func() error, error) {
	if cfg.Events.AMQPURL == "" {
		logger.Info("no broker configured, events disabled")
		return events.Noop{}, func() error { return nil }, nil
	}

	ch, closeFn, err := events.Dial(cfg.Events.AMQPURL)
	if err != nil {
		return nil, nil, fmt.Errorf("events.Dial: %w", err)
	}

	publisher, err := events.NewPublisher(ch, events.PublisherOptions{
		Producer: cfg.Events.Producer,
		Logger:   logger.Named("events"),
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("events.NewPublisher: %w", err)
	}

	return publisher, closeFn, nil
}
