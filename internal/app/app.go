package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/config"
	handlers "github.com/farzanehfar/onthebeach-holiday-search-lib/internal/http"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/providers"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/routes"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/search"
)

type App struct {
	Router      http.Handler
	Catalog     *search.Catalog
	Service     *search.Service
	Cache       search.CacheService
	RateLimiter search.RateLimiter
	Metrics     *obs.Metrics

	closers map[string]func() error
}

// SetAppConfig wires every component and performs the first dataset load.
// The server must not start on an empty catalog, so a failed load is returned.
func SetAppConfig(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{closers: map[string]func() error{}}

	provider, err := a.newProvider(cfg)
	if err != nil {
		return nil, err
	}

	customRegistry := prometheus.NewRegistry()
	a.Metrics = obs.NewMetrics(customRegistry)

	a.Catalog = search.NewCatalog(provider, a.Metrics, logger)
	if _, err := a.Catalog.Reload(ctx); err != nil {
		a.Close(logger)
		return nil, err
	}

	if client := config.NewRedisClient(cfg.Redis); client != nil {
		logger.Info("using redis result cache", "addr", cfg.Redis.Addr)
		a.Cache = search.NewRedisCache(client, cfg.CacheTTL, cfg.Redis.Prefix, a.Metrics, logger)
		a.closers["redis"] = client.Close
	} else {
		if cfg.Redis.Enabled() {
			logger.Warn("redis unreachable, falling back to in-process cache", "addr", cfg.Redis.Addr)
		}
		a.Cache = search.NewCache(cfg.CacheTTL, a.Metrics)
	}

	a.RateLimiter = search.NewIPRateLimiter(cfg.RateLimitCap, cfg.RateLimitEvery)
	a.Service = search.NewService(a.Catalog, a.Cache, a.Metrics, cfg.SearchTimeout)
	h := handlers.NewHandler(a.Service, a.Catalog, a.RateLimiter, a.Metrics)

	router := routes.GetRoutes(h, a.Metrics, logger, cfg.RequestTimeout)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	a.Router = corsHandler.Handler(router)

	return a, nil
}

func (a *App) newProvider(cfg config.Config) (providers.Provider, error) {
	switch cfg.DataSource {
	case config.SourceJSON:
		return providers.NewJSONFileProvider(cfg.FlightsPath, cfg.HotelsPath), nil
	case config.SourceScylla:
		session, err := providers.NewScyllaSession(providers.ScyllaConfig{
			Hosts:       cfg.Scylla.Hosts,
			Port:        cfg.Scylla.Port,
			Keyspace:    cfg.Scylla.Keyspace,
			Username:    cfg.Scylla.Username,
			Password:    cfg.Scylla.Password,
			Consistency: cfg.Scylla.Consistency,
			LocalDC:     cfg.Scylla.LocalDC,
			NumConns:    cfg.Scylla.NumConns,
			Timeout:     cfg.Scylla.Timeout,
		})
		if err != nil {
			return nil, err
		}
		a.closers["scylla"] = func() error {
			session.Close()
			return nil
		}
		return providers.NewScyllaProvider(session), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// Close releases external connections.
func (a *App) Close(logger *slog.Logger) {
	for name, closer := range a.closers {
		if err := closer(); err != nil {
			logger.Error("failed to close resources", "name", name, "error", err)
		}
	}
}
