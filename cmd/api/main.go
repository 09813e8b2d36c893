package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillyug/skillyug-api/config"
	"github.com/skillyug/skillyug-api/internal/handlers"
	"github.com/skillyug/skillyug-api/internal/middleware"
	"github.com/skillyug/skillyug-api/internal/services"
	"github.com/skillyug/skillyug-api/pkg/httpclient"
	"github.com/skillyug/skillyug-api/pkg/identity"
	"github.com/skillyug/skillyug-api/pkg/logger"
	"github.com/skillyug/skillyug-api/pkg/mailer"
	"github.com/skillyug/skillyug-api/pkg/metrics"
	"github.com/skillyug/skillyug-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAuthRoutes registers the credential exchange and session
// lifecycle endpoints.
func registerAuthRoutes(
	router *gin.Engine,
	loginRateLimiter, otpRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	authService services.AuthServiceInterface,
) {
	auth := router.Group("/api/v1/auth")
	auth.Use(middleware.BodySizeLimitMiddleware(100 * 1024))
	auth.POST("/login", loginRateLimiter.Middleware(), authHandler.Login)
	auth.POST("/register", loginRateLimiter.Middleware(), authHandler.Register)
	auth.POST("/verify-otp", otpRateLimiter.Middleware(), authHandler.VerifyOtp)
	auth.POST("/resend-otp", otpRateLimiter.Middleware(), authHandler.ResendOtp)
	auth.POST("/send-verification-otp", otpRateLimiter.Middleware(), authHandler.SendVerificationOtp)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session",
		middleware.SessionMiddleware(authService.GetTokenManager(), authService.GetCookieDomain(), authService.GetCookieSecure()),
		authHandler.GetSession,
	)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Skillyug API",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.AlloyEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize HTTP client for identity service calls
	httpClient := httpclient.NewStandardClientWithTimeout(10 * time.Second)

	// Initialize services
	// The API process always talks to the identity service server-side.
	authService := services.NewAuthService(cfg, identity.ServerSide, httpClient)
	emailService := services.NewEmailService(cfg, mailer.NewSMTPMailer(cfg.Email))

	if !cfg.EmailConfigured() {
		logger.Warn("SMTP credentials not configured - email dispatch will fail verification")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Frontend.BaseURL)
	emailHandler := handlers.NewEmailHandler(emailService)
	healthHandler := handlers.NewHealthHandler(cfg.EmailConfigured)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	loginRateLimiter := middleware.NewRateLimiter(1, 5)       // 1 req/sec, burst of 5 (credential stuffing)
	otpRateLimiter := middleware.NewRateLimiter(0.2, 3)       // 1 req/5sec, burst of 3 (OTP abuse)
	emailRateLimiter := middleware.NewRateLimiter(5, 10)      // 5 req/sec, burst of 10 (relay spam)

	// API routes
	api := router.Group("/api")
	// Utility endpoints (not versioned - operational endpoints)
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// Transactional email endpoint. POST only; every other verb answers 405.
	api.POST("/send-email", emailRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), emailHandler.SendEmail)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		api.Handle(method, "/send-email", emailHandler.MethodNotAllowed)
	}

	// Auth bridge routes
	registerAuthRoutes(router, loginRateLimiter, otpRateLimiter, authHandler, authService)

	// Create HTTP server
	// SECURITY: Bind to all interfaces for Docker Compose networking
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
