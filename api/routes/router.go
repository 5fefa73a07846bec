package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gocart/storefront/api/controllers"
	"github.com/gocart/storefront/api/middleware"
	"github.com/gocart/storefront/internal/addresses"
	"github.com/gocart/storefront/internal/auth"
	"github.com/gocart/storefront/internal/orders"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/config"
	"github.com/gocart/storefront/pkg/logger"
	"github.com/gocart/storefront/pkg/metrics"
	pkgredis "github.com/gocart/storefront/pkg/redis"
)

// FeedServer upgrades an authorized request onto a store's live order feed.
type FeedServer interface {
	Serve(w http.ResponseWriter, r *http.Request, storeID uuid.UUID) error
}

// Params is everything the HTTP surface needs. Optional infrastructure may be
// nil: the matching middleware then steps aside.
type Params struct {
	Config *config.Config
	Logger *logger.Logger

	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	RateLimiter pkgredis.RateLimiter

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth      auth.Service
	Stores    stores.Service
	Orders    orders.Service
	Addresses addresses.Service
	Users     users.Service
	Feed      FeedServer
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if p.HTTPMetrics != nil {
		r.Use(middleware.Metrics(p.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, readinessDeps(p), logg))
	})
	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	adminCookie := controllers.AdminCookie{
		Name:   cfg.AdminJWT.CookieName,
		Secure: cfg.App.IsProd(),
		MaxAge: cfg.AdminJWT.TTL,
	}
	var idempotencyTTL time.Duration
	if p.Idempotency != nil {
		idempotencyTTL = cfg.Idempotency.TTL
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.With(middleware.LoginRateLimit(p.RateLimiter, cfg.AuthRateLimit, logg)).
					Post("/login", controllers.AdminLogin(p.Auth, adminCookie, logg))
				r.Post("/logout", controllers.AdminLogout(p.Auth, adminCookie, logg))
				r.Get("/check", controllers.AdminAuthCheck(p.Auth, adminCookie, logg))
			})

			r.With(middleware.Identity(cfg.Identity, logg)).Get("/check", controllers.AdminRoleCheck())

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminGuard(p.Auth, cfg.AdminJWT.CookieName, logg))
				r.Get("/stores", controllers.AdminListStores(p.Stores, logg))
				r.Patch("/stores", controllers.AdminUpdateStoreStatus(p.Stores, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(cfg.Identity, logg))
			r.Use(middleware.Idempotency(p.Idempotency, idempotencyTTL, logg))

			r.Get("/stores", controllers.MyStore(p.Stores, logg))
			r.Post("/stores", controllers.CreateStore(p.Stores, logg))
			r.Get("/stores/orders", controllers.StoreOrders(p.Orders, logg))
			r.Get("/stores/orders/ws", controllers.StoreOrderFeed(p.Stores, p.Feed, logg))

			r.Get("/orders", controllers.ListOrders(p.Orders, logg))
			r.Post("/orders", controllers.PlaceOrder(p.Orders, logg))

			r.Get("/addresses", controllers.ListAddresses(p.Addresses, logg))
			r.Post("/addresses", controllers.CreateAddress(p.Addresses, logg))

			r.Get("/users", controllers.Profile(p.Users, logg))
			r.Put("/users", controllers.UpdateProfile(p.Users, logg))
		})
	})

	return r
}

func readinessDeps(p Params) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if p.DB != nil {
		deps["postgres"] = p.DB
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}
	return deps
}
