package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	storefrontserver "github.com/Apurer/storefront-cart/go"
	catalogclient "github.com/Apurer/storefront-cart/internal/clients/http/catalog"
	cartmemory "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/memory"
	cartnotification "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/notification"
	cartobs "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/redis"
	cartapp "github.com/Apurer/storefront-cart/internal/domains/cart/application"
	cartports "github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/storefront-cart/internal/domains/catalog/adapters/memory"
	catalogremote "github.com/Apurer/storefront-cart/internal/domains/catalog/adapters/remote"
	catalogports "github.com/Apurer/storefront-cart/internal/domains/catalog/ports"
	"github.com/Apurer/storefront-cart/internal/platform/migrations"
	platformobservability "github.com/Apurer/storefront-cart/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-cart/internal/platform/postgres"
	platformredis "github.com/Apurer/storefront-cart/internal/platform/redis"
)

const serviceName = "storefront-cart-api"

// Run boots the storefront cart HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	storage, cleanupStorage := buildSnapshotStore(ctx, cfg, logger)
	defer cleanupStorage()
	catalog := buildCatalog(cfg, logger)
	router := NewRouter(cfg, storage, catalog, instruments)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront cart API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storefront cart API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down storefront cart API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// NewRouter assembles the gin engine with per-session cart stores backed by storage.
func NewRouter(cfg Config, storage cartports.SnapshotStore, catalog catalogports.Catalog, instruments *platformobservability.Instruments) *gin.Engine {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	decorate := func(sessionID string, svc cartports.Service) cartports.Service {
		return cartobs.New(svc,
			cartobs.WithLogger(logger),
			cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
			cartobs.WithMeter(instruments.Meter("internal.cart.application")),
			cartobs.WithSessionID(sessionID),
		)
	}
	sessions := cartapp.NewSessionsWithCapacity(cfg.SessionCapacity, storage, decorate,
		cartapp.WithLogger(logger),
		cartapp.WithNotifier(cartnotification.NewLogger(logger)),
	)

	handlers := storefrontserver.ApiHandleFunctions{
		CartAPI:    storefrontserver.NewCartAPI(sessions, catalog, cfg.TaxRate),
		ProductAPI: storefrontserver.NewProductAPI(catalog),
	}
	return storefrontserver.NewRouter(handlers, otelgin.Middleware(serviceName))
}

func buildSnapshotStore(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.SnapshotStore, func()) {
	switch cfg.Storage {
	case StorageRedis:
		client, err := platformredis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("failed to connect to redis, falling back to in-memory cart storage", slog.String("error", err.Error()))
			return cartmemory.NewSnapshotStore(), func() {}
		}
		logger.Info("cart storage configured with redis", slog.String("addr", cfg.RedisAddr))
		return cartredis.NewSnapshotStore(client), func() { _ = client.Close() }
	case StoragePostgres:
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory cart storage", slog.String("error", err.Error()))
			return cartmemory.NewSnapshotStore(), func() {}
		}
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to migrate cart schema, falling back to in-memory cart storage", slog.String("error", err.Error()))
			platformpostgres.Close(db)
			return cartmemory.NewSnapshotStore(), func() {}
		}
		logger.Info("cart storage configured with postgres")
		return cartpostgres.NewSnapshotStore(db), func() { platformpostgres.Close(db) }
	default:
		logger.Info("cart storage configured in memory")
		return cartmemory.NewSnapshotStore(), func() {}
	}
}

func buildCatalog(cfg Config, logger *slog.Logger) catalogports.Catalog {
	if cfg.CatalogBaseURL == "" {
		logger.Warn("CATALOG_BASE_URL not set, serving the seeded in-memory catalog")
		return catalogmemory.NewSeededCatalog()
	}
	client, err := catalogclient.NewClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, nil)
	if err != nil {
		logger.Warn("invalid product API configuration, serving the seeded in-memory catalog", slog.String("error", err.Error()))
		return catalogmemory.NewSeededCatalog()
	}
	logger.Info("catalog configured with remote product API", slog.String("baseURL", cfg.CatalogBaseURL))
	return catalogremote.NewCatalog(client)
}
