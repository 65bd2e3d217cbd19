package main

// @title LeadDesk API
// @version 1.0
// @description Lead management backend: filtered lead lists, pipeline stats and an admin surface.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jordanlanch/leaddesk/config"
	_ "github.com/jordanlanch/leaddesk/pkg/api/docs"
	"github.com/jordanlanch/leaddesk/pkg/api/handlers"
	apimiddleware "github.com/jordanlanch/leaddesk/pkg/api/middleware"
	"github.com/jordanlanch/leaddesk/pkg/auth"
	"github.com/jordanlanch/leaddesk/pkg/cache"
	"github.com/jordanlanch/leaddesk/pkg/jobs"
	"github.com/jordanlanch/leaddesk/pkg/leads"
	"github.com/jordanlanch/leaddesk/pkg/leadsources"
	"github.com/jordanlanch/leaddesk/pkg/logger"
	"github.com/jordanlanch/leaddesk/pkg/metrics"
	custommiddleware "github.com/jordanlanch/leaddesk/pkg/middleware"
	"github.com/jordanlanch/leaddesk/pkg/store"
	"github.com/jordanlanch/leaddesk/pkg/users"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err == nil {
		log.Printf("🔧 Loaded .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("🔧 Configuration loaded (environment: %s, storage: %s)", cfg.APIEnvironment, cfg.StorageDriver)

	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.APIEnvironment,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.APIEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	db, err := store.Open(startCtx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it lists are not cached and logout cannot
	// revoke tokens.
	var (
		redisClient *cache.Client
		blacklist   *auth.TokenBlacklist
		cachePinger handlers.Pinger
	)
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		blacklist = auth.NewTokenBlacklist(redisClient)
		cachePinger = redisClient
	} else {
		log.Printf("ℹ️  Redis disabled (no REDIS_URL configured)")
	}

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New(prometheus.DefaultRegisterer)
	if pool, ok := db.(store.PoolReporter); ok {
		prometheusMetrics.WatchDBConnections(pool.OpenConnections)
	}
	log.Printf("✅ Prometheus metrics initialized")

	// Services
	leadOpts := []leads.Option{
		leads.WithRecorder(prometheusMetrics),
		leads.WithLogger(appLog.With("component", "leads")),
		leads.WithPhoneRegion(cfg.DefaultPhoneRegion),
	}
	if redisClient != nil {
		leadOpts = append(leadOpts, leads.WithCache(redisClient, cfg.ListCacheTTL))
	}
	leadService := leads.NewService(db, leadOpts...)
	userService := users.NewService(db, appLog.With("component", "users"))
	sourceService := leadsources.NewService(db)

	// Scheduled jobs
	jobLog := appLog.With("component", "jobs")
	cronManager := jobs.NewCronManager(jobs.NewPipelineSnapshot(db, prometheusMetrics, jobLog), jobLog)
	if err := cronManager.SetupJobs(cfg.PipelineSnapshotSchedule); err != nil {
		log.Fatalf("❌ Invalid PIPELINE_SNAPSHOT_SCHEDULE: %v", err)
	}
	cronManager.Start()
	defer cronManager.Stop()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	defer globalRateLimiter.Stop()
	authRateLimiter := custommiddleware.NewWindowRateLimiter(cfg.AuthRateLimitRequests, cfg.AuthRateLimitWindow)
	defer authRateLimiter.Stop()

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Sentry error tracking middleware (if configured)
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.FrontendURL)))
	e.Use(middleware.Gzip())
	securityHeaders := custommiddleware.DefaultSecurityHeadersConfig()
	securityHeaders.Skipper = custommiddleware.SkipPrefix("/swagger/")
	if cfg.IsProduction() {
		securityHeaders.HSTSMaxAge = 31536000
	}
	e.Use(custommiddleware.SecurityHeaders(securityHeaders))
	e.Use(globalRateLimiter.RateLimitMiddleware())

	handlers.Routes{
		Auth: handlers.NewAuthHandler(userService, handlers.AuthConfig{
			JWTSecret:          cfg.JWTSecret,
			JWTExpirationHours: cfg.JWTExpirationHours,
		}, blacklist, prometheusMetrics, appLog.With("component", "auth")),
		Leads:     handlers.NewLeadHandler(leadService),
		Admin:     handlers.NewAdminHandler(userService, sourceService, leadService),
		Health:    handlers.NewHealthHandler(db, cachePinger),
		JWT:       apimiddleware.JWTMiddleware(cfg.JWTSecret, blacklist, db),
		AuthLimit: authRateLimiter.RateLimitMiddleware(),
	}.Register(e)

	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	// Swagger documentation (public)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	address := fmt.Sprintf(":%s", cfg.APIPort)
	log.Printf("🚀 LeadDesk API starting on %s", address)
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), auth: %d per %s",
		cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst, cfg.AuthRateLimitRequests, cfg.AuthRateLimitWindow)

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server gracefully stopped")
}
