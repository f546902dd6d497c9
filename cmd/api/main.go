// @title                       Catalog API
// @version                     1.0
// @description                 Products and user accounts with JWT authentication and role-based access.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/core/service"
	"github.com/storefront/catalog-api/internal/core/validate"
	"github.com/storefront/catalog-api/internal/infrastructure/config"
	"github.com/storefront/catalog-api/internal/infrastructure/db/mongo"
	"github.com/storefront/catalog-api/internal/infrastructure/db/redis"
	"github.com/storefront/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		File:    cfg.LogFile,
		Service: "catalog-api",
	})

	// --- Storage ---
	connector := mongo.NewConnector(mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := connector.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	db, err := connector.Database(ctx)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}

	var (
		cache ports.ProductCache
		rdb   goredis.Cmdable
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		cache = redis.NewProductCache(client, cfg.Redis.CacheTTL)
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("product cache enabled")
	}

	// --- Services ---
	creds, err := service.NewCredentialService(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(userRepo, creds, log.With().Str("component", "auth").Logger())
	productService := service.NewProductService(productRepo, cache, log.With().Str("component", "products").Logger())

	priceRule := validate.PricePresence
	if !cfg.Catalog.AllowZeroPrice {
		priceRule = validate.PriceTruthy
	}

	e := api.NewRouter(api.Deps{
		Log:           log,
		Auth:          authService,
		Products:      productService,
		Tokens:        creds,
		Database:      connector,
		Redis:         rdb,
		PriceRule:     priceRule,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

func serve(ctx context.Context, h http.Handler, addr string, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("catalog api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("catalog api stopped gracefully")
	return nil
}
