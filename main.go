package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"example.com/brewery-admin/internal/infra/backend"
	"example.com/brewery-admin/internal/infra/config"
	"example.com/brewery-admin/internal/infra/metrics"
	"example.com/brewery-admin/internal/infra/security"
	"example.com/brewery-admin/internal/infra/session"
	transport "example.com/brewery-admin/internal/interface/http"
	authuc "example.com/brewery-admin/internal/usecase/auth"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var sessions session.Store
	var memStore *session.MemoryStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		sessions = session.NewRedisStore(rdb, "brewery:session:", cfg.SessionTTL)
		logger.Info("session store", "kind", "redis", "addr", cfg.RedisAddr)
	} else {
		memStore = session.NewMemoryStore(cfg.SessionTTL)
		sessions = memStore
		logger.Info("session store", "kind", "memory")
	}

	collector := metrics.NewCollector("brewery_admin")
	client := backend.NewClient(cfg.BackendURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
		backend.WithLogger(logger),
		backend.WithObserver(collector),
	)

	tokens := security.NewJWTService(cfg.SessionSecret, cfg.SessionTTL)
	authSvc := authuc.NewService(backend.NewAuthService(client), tokens, sessions)

	api, err := transport.NewAPI(transport.Dependencies{
		AuthService:      authSvc,
		Materials:        backend.NewMaterialRepository(client),
		Movements:        backend.NewMovementRepository(client, cfg.Location()),
		Packagings:       backend.NewPackagingRepository(client),
		Products:         backend.NewProductRepository(client),
		ProductionOrders: backend.NewProductionOrderRepository(client),
		Users:            backend.NewUserRepository(client),
		Analytics:        backend.NewAnalyticsRepository(client),
		Layout:           backend.NewWarehouseLayout(client, cfg.LayoutCacheTTL, collector),
		Sessions:         sessions,
		Rollbacks:        collector,
		MetricsHandler:   collector.Handler(),
		Logger:           logger,
		SearchDebounce:   cfg.SearchDebounce,
		PageSize:         cfg.PageSize,
		SessionTTL:       cfg.SessionTTL,
		SecureCookies:    cfg.SecureCookies,
	})
	if err != nil {
		return fmt.Errorf("build api: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				dropped := api.SweepControllers(cfg.SessionTTL)
				if memStore != nil {
					dropped += memStore.PurgeExpired()
				}
				if dropped > 0 {
					logger.Debug("sweep idle sessions", "dropped", dropped)
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
