// Package http provides HTTP routing and middleware configuration
// for the catalog API.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ilyakh/ShopKeeper/internal/auth"
	"github.com/ilyakh/ShopKeeper/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// catalog API. It applies JSON content-type enforcement, request logging,
// and per-IP rate limiting, and mounts the auth and product endpoints
// under /api.
//
// Routes:
//
//	POST   /api/auth/signup   → authHandler.SignUp
//	POST   /api/auth/signin   → authHandler.SignIn
//	GET    /api/products      → productHandler.List    (bearer auth)
//	POST   /api/products      → productHandler.Create  (bearer auth)
//	GET    /api/products/{id} → productHandler.Get     (bearer auth)
//	PUT    /api/products/{id} → productHandler.Update  (bearer auth)
//	DELETE /api/products/{id} → productHandler.Delete  (bearer auth)
func NewRouter(
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	tokens *auth.Manager,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Throttle abusive clients per IP
	r.Use(limiter.Handler)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(tokens))

			r.Get("/products", productHandler.List)
			r.Post("/products", productHandler.Create)
			r.Get("/products/{id}", productHandler.Get)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)
		})
	})

	return r
}
