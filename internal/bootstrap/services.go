package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/skadi15/fruitstand/config"
	"github.com/skadi15/fruitstand/internal/core"
	"github.com/skadi15/fruitstand/internal/data"
	"github.com/skadi15/fruitstand/internal/domain/pricing"
	"github.com/skadi15/fruitstand/internal/observability/statsd"
	"github.com/skadi15/fruitstand/internal/service"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Orders  *service.OrderService
	Metrics *statsd.Client // nil when metrics are disabled
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	return c.Metrics.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, cache, and metrics into the order service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	repo, err := buildOrderRepository(cfg.Storage, deps.DB)
	if err != nil {
		return ServiceContainer{}, err
	}

	var cache core.CacheRepository
	if cfg.Cache.Enabled {
		if deps.RedisClient == nil {
			return ServiceContainer{}, errors.New("CACHE_ENABLED requires a redis client")
		}
		cache = data.NewRedisCacheRepo(deps.RedisClient, cfg.Cache.KeyPrefix)
	}

	metricsClient := buildMetrics(logger, cfg)

	svcCfg := service.OrderServiceConfig{
		Pricing:  pricing.NewCalculator(cfg.Pricing.Catalog()),
		Cache:    cache,
		CacheTTL: cfg.Cache.OrderTTL,
	}
	if metricsClient != nil {
		svcCfg.Metrics = metricsClient
	}

	orders, err := service.NewOrderService(service.OrderServiceOptions{
		Repo:   repo,
		Config: svcCfg,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("order service: %w", err)
	}

	logger.Info("services initialised",
		"storage_backend", cfg.Storage.Backend,
		"cache_enabled", cache != nil,
		"metrics_enabled", metricsClient.Enabled())

	return ServiceContainer{Orders: orders, Metrics: metricsClient}, nil
}

//nolint:ireturn // the backend is selected at runtime.
func buildOrderRepository(cfg config.StorageConfig, db *sql.DB) (core.OrderRepository, error) {
	switch cfg.Backend {
	case config.StorageBackendPostgres:
		if db == nil {
			return nil, errors.New("postgres storage backend requires a database connection")
		}
		return data.NewOrderRepo(db), nil
	case config.StorageBackendMemory, "":
		return data.NewMemoryOrderRepo(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// buildMetrics returns nil when metrics are disabled or the sink cannot be dialled.
func buildMetrics(logger *slog.Logger, cfg *config.AppConfig) *statsd.Client {
	metrics := cfg.Observability.Metrics
	if !metrics.IsEnabled() {
		return nil
	}

	tags := map[string]string{"backend": string(cfg.Storage.Backend)}
	maps.Copy(tags, metrics.GlobalTags())

	client, err := statsd.NewClient(statsd.Config{
		Enabled:    true,
		Address:    metrics.StatsdAddress,
		Prefix:     metrics.Prefix,
		Logger:     logger,
		GlobalTags: tags,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until SIGINT/SIGTERM is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunServices(ctx, cfg)
}

// RunServices runs the enabled services until ctx is canceled or one fails.
func RunServices(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if enabled[config.ServiceModeHTTP] {
		g.Go(func() error {
			return StartHTTPServer(gctx, &HTTPServerConfig{
				Config:   cfg.Config,
				Services: cfg.Services,
				Logger:   logger,
			})
		})
	}

	err = g.Wait()
	if cerr := cfg.Services.Close(); cerr != nil {
		logger.Warn("close services", "error", cerr)
	}
	if err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
