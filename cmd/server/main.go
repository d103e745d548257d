package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/config"
	"github.com/anyulbade/aiclases-pricing/internal/database"
	"github.com/anyulbade/aiclases-pricing/internal/handler"
	"github.com/anyulbade/aiclases-pricing/internal/metrics"
	"github.com/anyulbade/aiclases-pricing/internal/middleware"
	"github.com/anyulbade/aiclases-pricing/internal/offers"
	"github.com/anyulbade/aiclases-pricing/internal/payments"
	"github.com/anyulbade/aiclases-pricing/internal/repository"
	"github.com/anyulbade/aiclases-pricing/internal/service"
	"github.com/anyulbade/aiclases-pricing/internal/templates"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pool *pgxpool.Pool
	if cfg.UsesDatabase() {
		var err error
		pool, err = database.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		data, err := catalog.DefaultData()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read bundled catalog")
		}
		if err := database.SeedCatalog(ctx, pool, data); err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}

	cat, err := loadCatalog(ctx, cfg, pool)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("failed to load catalog")
	}
	log.Info().
		Str("source", cfg.CatalogSource).
		Int("regions", len(cat.Regions())).
		Str("default_region", cat.Resolver().Default().ID).
		Msg("catalog loaded")

	engine, err := offers.NewEngine(cat.SpecialOffers())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to compile special offers")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(m.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	var db handler.Pinger
	if pool != nil {
		db = pool
	}
	healthHandler := handler.NewHealthHandler(db, len(cat.Regions()))
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler.SetupSwagger(router, "docs/swagger.json")
	setupAPIRoutes(router, cfg, cat, engine, m)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func loadCatalog(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*catalog.Catalog, error) {
	data, err := catalog.DefaultData()
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		data, err = repository.NewCatalogRepository(pool).Load(ctx)
	}
	if err != nil {
		return nil, err
	}
	if cfg.DefaultRegion != "" {
		data.DefaultRegion = cfg.DefaultRegion
	}
	return catalog.New(data)
}

func setupAPIRoutes(router *gin.Engine, cfg *config.Config, cat *catalog.Catalog, engine *offers.Engine, m *metrics.Metrics) {
	providers := payments.NewRegistry(
		payments.NewMercadoPagoProvider(cfg.GatewayWebhookSecret, cfg.GatewayRegions),
		payments.NewStripeProvider(cfg.CardWebhookSecret),
	)
	log.Info().Strs("providers", providers.Names()).Msg("payment providers registered")

	pricingService := service.NewPricingService(cat, engine, m)
	authService := service.NewAuthService(cfg.AuthSecret, service.DefaultSessionTTL)
	activityService := service.NewActivityService()
	checkoutService := service.NewCheckoutService(pricingService, providers, m, cfg.CheckoutReturnURL)
	webhookService := service.NewWebhookService(providers, activityService, m)
	dashboardService, err := service.NewDashboardService(pricingService, activityService, templates.Dashboard)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse dashboard template")
	}

	handler.RegisterRoutes(router, handler.Handlers{
		Pricing:  handler.NewPricingHandler(pricingService),
		Auth:     handler.NewAuthHandler(authService),
		Checkout: handler.NewCheckoutHandler(checkoutService, webhookService),
		Admin:    handler.NewAdminHandler(activityService, dashboardService),
	}, authService)
}
