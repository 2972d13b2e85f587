package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-kart/internal/config"
	"bakery-kart/internal/coupon"
	"bakery-kart/internal/database"
	"bakery-kart/internal/handler"
	"bakery-kart/internal/pricing"
	"bakery-kart/internal/repository"
	"bakery-kart/internal/router"
	"bakery-kart/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bakery-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	catalog, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize promotion catalogue: %w", err)
	}

	var savedStore coupon.SavedStore
	if cfg.Redis.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()
		savedStore = coupon.NewRedisSavedStore(client, logger)
	} else {
		logger.Info().Msg("redis disabled, saved coupons are kept in memory")
		savedStore = coupon.NewMemorySavedStore()
	}

	engineCfg, err := cfg.Pricing.EngineConfig()
	if err != nil {
		return fmt.Errorf("invalid pricing configuration: %w", err)
	}
	engine := pricing.NewEngine(engineCfg)

	logger.Info().
		Str("revocation_policy", engineCfg.Revocation.String()).
		Str("timezone", cfg.Pricing.Timezone).
		Str("base_shipping_fee", engineCfg.BaseShippingFee.String()).
		Str("per_km_fee", engineCfg.PerKmFee.String()).
		Msg("pricing engine configured")

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	profileService := service.NewProfileService(profileRepo, cfg.Pricing.Location(), logger)
	couponService := service.NewCouponService(catalog, savedStore, logger)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, profileService, engine, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Profile:  handler.NewProfileHandler(profileService, logger),
		Coupon:   handler.NewCouponHandler(couponService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog builds the promotion catalogue, reading from S3 with a local
// fallback when S3 is enabled.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (coupon.Catalog, error) {
	fileLoader := coupon.NewFileLoader(logger)

	var s3Loader coupon.Loader
	if cfg.S3.Enabled {
		l, err := coupon.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for promotion files (S3 disabled)")
	}

	loader := coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	return coupon.NewCatalog(ctx, coupon.CatalogConfig{FilePaths: cfg.Coupons.CatalogFiles}, loader, logger)
}
