package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ilyakh/ShopKeeper/internal/auth"
	"github.com/ilyakh/ShopKeeper/internal/middleware"
	"github.com/ilyakh/ShopKeeper/internal/models"
)

func newTestRouter(t *testing.T, rps, burst int) (http.Handler, *auth.Manager) {
	t.Helper()
	tokens := auth.NewManager("test-secret", time.Hour)
	authHandler := &AuthHandler{AuthService: &fakeAuthService{id: 7, token: "tok"}}
	productHandler := &ProductHandler{ProductService: &fakeProductService{listReturn: []models.Product{}}}
	limiter := middleware.NewRateLimiter(rps, burst)
	return NewRouter(authHandler, productHandler, tokens, limiter, zap.NewNop()), tokens
}

func TestRouter_SignInRoute(t *testing.T) {
	router, _ := newTestRouter(t, 100, 100)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProductsRequireAuth(t *testing.T) {
	router, tokens := newTestRouter(t, 100, 100)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := tokens.Generate(7, "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	router, _ := newTestRouter(t, 100, 100)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`username=alice`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestRouter_RateLimits(t *testing.T) {
	router, _ := newTestRouter(t, 1, 2)

	var last int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`{"username":"alice","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exceeding burst, got %d", last)
	}
}
