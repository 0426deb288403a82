package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/restkit/handler"
	"github.com/dmitrymomot/restkit/internal/articles"
	"github.com/dmitrymomot/restkit/pkg/config"
	"github.com/dmitrymomot/restkit/pkg/httpserver"
	"github.com/dmitrymomot/restkit/pkg/logger"
	"github.com/dmitrymomot/restkit/pkg/pg"
	"github.com/dmitrymomot/restkit/pkg/redis"
)

const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

type serverConfig struct {
	HTTP     httpserver.Config
	Redis    redis.Config
	Postgres pg.Config

	Store    string `env:"RESTKIT_STORE" envDefault:"memory"`
	RedisKey string `env:"RESTKIT_REDIS_KEY" envDefault:"restkit:articles"`
	// APIKey authorizes writes. Empty makes the API read-only.
	APIKey string `env:"RESTKIT_API_KEY"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the articles resource, Prometheus metrics and health probes until interrupted.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address, overrides HTTP_ADDR")
	serveCmd.Flags().String("store", "", "article store: memory, redis or postgres; overrides RESTKIT_STORE")
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg serverConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store = store
	}

	log := logger.New(
		logger.FromSettings(config.Current(), "restkit"),
		logger.WithContextExtractors(handler.RequestIDExtractor),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics, err := handler.NewMetrics(nil, "restkit")
	if err != nil {
		return err
	}
	res := articles.NewResource(store, log)
	doc := res.OpenAPI("/articles", version)

	r := chi.NewRouter()
	r.Use(handler.RequestID, metrics.Middleware, articles.APIKey(cfg.APIKey))
	r.Get("/livez", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, checks))
	r.Handle("/metrics", metrics.Handler())
	r.Get("/openapi.json", handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](
		func(handler.Context, struct{}) handler.Response { return handler.JSON(doc) },
	)))
	r.Route("/articles", res.Routes)

	log.InfoContext(ctx, "starting", slog.String("store", cfg.Store), slog.String("version", version))
	return httpserver.New(cfg.HTTP, r, log).Run(ctx)
}

func openStore(ctx context.Context, cfg serverConfig) (articles.Store, map[string]httpserver.Check, func(), error) {
	switch cfg.Store {
	case storeMemory:
		return articles.NewMemoryStore(), nil, func() {}, nil
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := map[string]httpserver.Check{"redis": redis.Healthcheck(client)}
		return articles.NewRedisStore(client, cfg.RedisKey), checks, func() { _ = client.Close() }, nil
	case storePostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		store := articles.NewPgStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}, pool.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store %q: want %s, %s or %s", cfg.Store, storeMemory, storeRedis, storePostgres)
}
