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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/gocart/storefront/api/routes"
	"github.com/gocart/storefront/internal/addresses"
	"github.com/gocart/storefront/internal/auth"
	"github.com/gocart/storefront/internal/coupons"
	"github.com/gocart/storefront/internal/feed"
	"github.com/gocart/storefront/internal/orders"
	"github.com/gocart/storefront/internal/products"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/auth/session"
	"github.com/gocart/storefront/pkg/config"
	"github.com/gocart/storefront/pkg/db"
	"github.com/gocart/storefront/pkg/logger"
	"github.com/gocart/storefront/pkg/metrics"
	"github.com/gocart/storefront/pkg/migrate"
	"github.com/gocart/storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)

	requireResource(ctx, logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	sessionManager, err := session.NewManager(redisClient, cfg.AdminJWT)
	requireResource(ctx, logg, "session manager", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)

	hub := feed.NewHub(feed.Options{
		SendBuffer:     cfg.Feed.SendBuffer,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        metrics.NewFeedMetrics(registry),
		Logger:         logg,
	})
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(ctx)
	}()

	gdb := dbClient.DB()

	usersService, err := users.NewService(users.NewRepository(gdb))
	requireResource(ctx, logg, "users service", err)

	storesService, err := stores.NewService(stores.NewRepository(gdb), usersService, orderMetrics)
	requireResource(ctx, logg, "stores service", err)

	addressRepo := addresses.NewRepository(gdb)
	addressesService, err := addresses.NewService(addressRepo, usersService)
	requireResource(ctx, logg, "addresses service", err)

	couponsService, err := coupons.NewService(coupons.NewRepository(gdb))
	requireResource(ctx, logg, "coupons service", err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		Tx:        dbClient,
		Orders:    orders.NewRepository(gdb),
		Products:  products.NewRepository(gdb),
		Addresses: addressRepo,
		Coupons:   couponsService,
		Users:     usersService,
		Stores:    storesService,
		Publisher: hub,
		Metrics:   orderMetrics,
	})
	requireResource(ctx, logg, "orders service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		Admins:         auth.NewAdminRepository(gdb),
		SessionManager: sessionManager,
		JWTConfig:      cfg.AdminJWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	requireResource(ctx, logg, "auth service", err)

	handler := routes.NewRouter(routes.Params{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		Idempotency:    redisClient,
		RateLimiter:    redisClient,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Auth:           authService,
		Stores:         storesService,
		Orders:         ordersService,
		Addresses:      addressesService,
		Users:          usersService,
		Feed:           hub,
	})

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logg.Info(serverCtx, "shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	<-hubDone
	closeErr = multierr.Combine(closeErr, redisClient.Close(), dbClient.Close())
	if closeErr != nil {
		logg.Error(serverCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(serverCtx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "resource", resource), "resource not working", err)
	os.Exit(1)
}
