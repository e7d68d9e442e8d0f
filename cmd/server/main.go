// Package main initializes and starts the catalog API server, setting up
// configuration, logging, database connections, repositories, services,
// and handlers.
package main

import (
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ilyakh/ShopKeeper/internal/auth"
	"github.com/ilyakh/ShopKeeper/internal/config"
	"github.com/ilyakh/ShopKeeper/internal/db"
	"github.com/ilyakh/ShopKeeper/internal/logger"
	"github.com/ilyakh/ShopKeeper/internal/middleware"
	"github.com/ilyakh/ShopKeeper/internal/repository"
	"github.com/ilyakh/ShopKeeper/internal/server/handler/http"
	"github.com/ilyakh/ShopKeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const tokenTTL = 24 * time.Hour

// orDefault stands in for cmp.Or (Go 1.22+), returning v if non-empty and
// def otherwise; the local toolchain is Go 1.21.
func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func main() {
	// Load .env first so config.Parse sees its variables.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is required, set JWT_SECRET or -s")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and products.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	productRepo := repository.NewPostgresProductRepository(postgresDB)

	// Token manager shared by the auth service and the bearer middleware.
	tokens := auth.NewManager(options.JWTSecret, tokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	productService := service.NewProductService(productRepo)

	// Create HTTP handlers for auth and product endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	productHandler := &http.ProductHandler{ProductService: productService}

	// Per-IP rate limiter.
	limiter := middleware.NewRateLimiter(20, 40)

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, productHandler, tokens, limiter, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
