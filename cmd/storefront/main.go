package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/persistence"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/guard"
	"github.com/spec-kit/storefront/internal/storefront/session"
	"github.com/spec-kit/storefront/internal/storefront/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, "storefront")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var storage session.Storage
	switch cfg.Storefront.SessionStore {
	case "redis":
		redis, err := persistence.NewRedis(context.Background(), cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to configure redis", zap.Error(err))
		}
		defer redis.Close()
		// Every page reads its session, so there is nothing to serve without Redis.
		if err := redis.Require(context.Background()); err != nil {
			logger.Fatal("session store unreachable", zap.Error(err))
		}
		storage = session.NewRedisStorage(redis.Client, cfg.Storefront.SessionTTL())
	default:
		logger.Warn("using in-memory session storage; sessions are lost on restart")
		storage = session.NewMemoryStorage()
	}

	app, err := web.New(web.Dependencies{
		AppName:       "storefront",
		API:           apiclient.New(cfg.Storefront.APIBaseURL, cfg.Storefront.APITimeout(), logger),
		Storage:       storage,
		Guard:         guard.New(),
		Logger:        logger,
		Metrics:       observability.NewMetrics(),
		SecureCookies: cfg.Storefront.SecureCookies,
	})
	if err != nil {
		logger.Fatal("failed to build storefront", zap.Error(err))
	}

	go func() {
		logger.Info("storefront listening",
			zap.String("addr", cfg.Storefront.Addr()),
			zap.String("api", cfg.Storefront.APIBaseURL),
			zap.String("sessions", cfg.Storefront.SessionStore),
		)
		if err := app.Listen(cfg.Storefront.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	_ = app.Shutdown()
}
