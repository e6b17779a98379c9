package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Cheertaboi/storefront-service/internal/api"
	"github.com/Cheertaboi/storefront-service/internal/cache"
	"github.com/Cheertaboi/storefront-service/internal/core"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
	"github.com/Cheertaboi/storefront-service/internal/media"
	"github.com/Cheertaboi/storefront-service/internal/payment"
	"github.com/Cheertaboi/storefront-service/internal/repository"
	"github.com/Cheertaboi/storefront-service/internal/service"
	"github.com/Cheertaboi/storefront-service/internal/session"
	"github.com/Cheertaboi/storefront-service/pkg/db"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
	"github.com/Cheertaboi/storefront-service/pkg/metrics"
	pkgredis "github.com/Cheertaboi/storefront-service/pkg/redis"
)

const (
	driverPostgres = "postgres"
	driverRedis    = "redis"
	driverMemory   = "memory"
)

type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`

	// Infrastructure
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"postgres"`
	Postgres      db.PostgresConfig
	SessionDriver string `envconfig:"SESSION_DRIVER" default:"redis"`
	Redis         pkgredis.Config
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	// Collaborators
	BIN payment.BINConfig
	CDN media.Config

	Payment service.PaymentConfig

	CartLookupWorkers int   `envconfig:"CART_LOOKUP_WORKERS" default:"4"`
	MaxUploadBytes    int64 `envconfig:"MAX_UPLOAD_BYTES" default:"20971520"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	env, known := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})
	if !known {
		logx.Warn().Str("value", cfg.Environment).Msg("unknown ENVIRONMENT, using development")
	}

	store, closeStore := openDocumentStore(cfg)
	defer closeStore()

	sessions, closeSessions := openSessionStore(cfg)
	defer closeSessions()

	products := repository.NewProductRepo(store)
	catalog := service.NewCatalogService(products, cache.NewProductCache(products), media.NewCDNUploader(cfg.CDN))
	carts := service.NewCartService(repository.NewCartRepo(store), catalog, cfg.CartLookupWorkers)
	addresses := service.NewAddressService(repository.NewAddressRepo(store))
	checkout := service.NewCheckoutService(carts, addresses, sessions)
	payments := service.NewPaymentService(checkout, payment.NewBINLookup(cfg.BIN), cfg.Payment)

	handler := api.NewRouter(api.Deps{
		Catalog:        catalog,
		Carts:          carts,
		Addresses:      addresses,
		Checkout:       checkout,
		Payments:       payments,
		Metrics:        metrics.NewServerMetrics(prometheus.DefaultRegisterer, "http"),
		Gatherer:       prometheus.DefaultGatherer,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logx.Error().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	logx.Info().Str("addr", cfg.HTTPAddr).Str("env", env.String()).Msg("starting storefront-service")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Fatal().Err(err).Msg("listen")
	}

	<-idleConnsClosed
	logx.Info().Msg("server stopped")
}

func openDocumentStore(cfg AppConfig) (docstore.Store, func()) {
	switch cfg.StoreDriver {
	case driverMemory:
		logx.Warn().Msg("using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), func() {}
	case driverPostgres:
		conn, err := db.NewPostgresConnection(cfg.Postgres)
		if err != nil {
			logx.Fatal().Err(err).Msg("db connect")
		}
		store := docstore.NewPostgresStore(conn)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			logx.Fatal().Err(err).Msg("db schema")
		}
		return store, func() { _ = conn.Close() }
	default:
		logx.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
		return nil, nil
	}
}

func openSessionStore(cfg AppConfig) (session.Store, func()) {
	switch cfg.SessionDriver {
	case driverMemory:
		return session.NewMemoryStore(cfg.SessionTTL), func() {}
	case driverRedis:
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		return session.NewRedisStore(rdb, cfg.SessionTTL), func() { _ = rdb.Close() }
	default:
		logx.Fatal().Str("driver", cfg.SessionDriver).Msg("unknown SESSION_DRIVER")
		return nil, nil
	}
}
