package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/keyhold-backend/api/controllers"
	pricingcontrollers "github.com/angelmondragon/keyhold-backend/api/controllers/pricing"
	"github.com/angelmondragon/keyhold-backend/api/middleware"
	"github.com/angelmondragon/keyhold-backend/internal/pricing"
	"github.com/angelmondragon/keyhold-backend/pkg/config"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
	"github.com/angelmondragon/keyhold-backend/pkg/redis"
)

// NewRouter wires the health, metrics and pricing surfaces. redisClient and
// gatherer may be nil; rate limiting and idempotency are skipped without Redis.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	pricingService pricing.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	checks := []controllers.ReadinessCheck{{Name: "postgres", Pinger: dbP}}
	if redisClient != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: redisClient})
	}

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, checks...))

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	policy := middleware.NewRateLimitPolicy("pricing", cfg.RateLimit.Window, cfg.RateLimit.IPLimit, cfg.RateLimit.PropertyLimit)

	r.Route("/api/v1/pricing", func(r chi.Router) {
		r.Use(middleware.PropertyContext(logg))

		r.Get("/tiers", pricingcontrollers.ListTiers(pricingService, logg))
		r.Get("/payment-options", pricingcontrollers.ListPaymentOptions(pricingService, logg))
		r.Get("/packages", pricingcontrollers.ListPackages(pricingService, logg))
		r.Get("/configuration", pricingcontrollers.GetConfiguration(pricingService, logg))
		r.Get("/configuration/quote", pricingcontrollers.PropertyQuote(pricingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(policy, redisClient, logg))
			r.Post("/calculate", pricingcontrollers.Calculate(pricingService, logg))
			r.Post("/quote", pricingcontrollers.Quote(pricingService, logg))
			r.With(idempotency(redisClient, cfg.Redis.IdempotencyTTL, logg)).
				Post("/configuration", pricingcontrollers.SaveConfiguration(pricingService, logg))
		})
	})

	return r
}

func passThrough(next http.Handler) http.Handler { return next }

// rateLimit and idempotency keep a nil *redis.Client from reaching the
// middleware as a non-nil interface.
func rateLimit(policy middleware.RateLimitPolicy, client *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if client == nil {
		return passThrough
	}
	return middleware.RateLimit(policy, client, logg)
}

func idempotency(client *redis.Client, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if client == nil {
		return passThrough
	}
	return middleware.Idempotency(client, ttl, logg)
}
