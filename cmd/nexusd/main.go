package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/api"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/archive"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/cache"
	rediscache "github.com/ochogwuprince92/nexus-job-board-client/internal/cache/redis"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/config"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/services"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/telemetry"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/watch"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newCache(cfg *config.Config) cache.Cache {
	return rediscache.New(cache.Options{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.CacheTTL,
	})
}

func newTokenStore(c cache.Cache) tokens.Store {
	return tokens.NewRedisStore(c)
}

func newAPIClient(cfg *config.Config, logger *zap.Logger, store tokens.Store) *api.Client {
	return api.NewClient(logger, store, api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		OnAuthExpired: func() {
			logger.Warn("session expired; daemon requests will be unauthenticated until the next login")
		},
	})
}

func newArchive(cfg *config.Config, logger *zap.Logger) (*archive.Archive, error) {
	return archive.New(context.Background(), archive.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
}

func newSink(a *archive.Archive) watch.Sink {
	return a
}

func registerWatcher(lc fx.Lifecycle, w *watch.Watcher, p watch.Publisher, a *archive.Archive, cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if err := a.EnsureSchema(startCtx); err != nil {
				cancel()
				return err
			}

			shutdown, err := telemetry.InitTracer(startCtx, "nexusd", cfg.OTLPCollectorURL)
			if err != nil {
				logger.Warn("tracing disabled", zap.Error(err))
			} else {
				go func() {
					<-ctx.Done()
					shutdown()
				}()
			}

			go func() {
				if err := w.Start(ctx); err != nil && ctx.Err() == nil {
					logger.Error("watcher stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			w.Stop()
			p.Close()
			return a.Close()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newCache,
			newTokenStore,
			newAPIClient,
			services.NewJobService,
			watch.NewPublisher,
			newArchive,
			newSink,
			watch.NewWatcher,
		),
		fx.Invoke(registerWatcher),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
