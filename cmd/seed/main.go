package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"

	"github.com/gocart/storefront/internal/auth"
	"github.com/gocart/storefront/pkg/config"
	"github.com/gocart/storefront/pkg/db"
	"github.com/gocart/storefront/pkg/logger"
	"github.com/gocart/storefront/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	demo := flag.Bool("demo", false, "also seed an approved demo store, catalog and coupon")
	productCount := flag.Int("products", 12, "number of demo products")
	seed := flag.Uint64("seed", 0, "faker seed; 0 picks a random one")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	provisioner, err := auth.NewProvisioner(dbClient, auth.NewAdminRepository(dbClient.DB()), cfg.Password)
	requireResource(ctx, logg, "provisioner", err)

	admin, created, err := provisioner.Ensure(ctx, auth.ProvisionRequest{
		Email:    cfg.Seed.AdminEmail,
		Name:     cfg.Seed.AdminName,
		Password: cfg.Seed.AdminPassword,
	})
	requireResource(ctx, logg, "admin account", err)

	adminCtx := logg.WithFields(ctx, map[string]any{"email": admin.Email, "created": created})
	logg.Info(adminCtx, "admin account ready")
	if cfg.Seed.AdminPassword == defaultAdminPassword {
		logg.Warn(adminCtx, "admin uses the default password; change it after first login")
	}

	if !*demo {
		return
	}

	summary, err := seedDemo(ctx, dbClient.DB(), gofakeit.New(*seed), *productCount, time.Now().UTC())
	requireResource(ctx, logg, "demo catalog", err)
	logg.Info(logg.WithFields(ctx, map[string]any{
		"store_id":         summary.StoreID.String(),
		"products_created": summary.ProductsCreated,
		"coupon_created":   summary.CouponCreated,
	}), "demo catalog ready")
}

const defaultAdminPassword = "admin123"

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "resource", resource), "seed failed", err)
	os.Exit(1)
}
