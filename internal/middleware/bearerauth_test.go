package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ilyakh/ShopKeeper/internal/auth"
)

func TestBearerAuth(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	token, err := m.Generate(7, "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var gotUserID int64
	handler := BearerAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedUser int64
	}{
		{
			name:         "no header",
			header:       "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer garbage",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			header:       "Bearer " + token,
			expectedCode: http.StatusOK,
			expectedUser: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if gotUserID != tt.expectedUser {
				t.Errorf("expected user id %d in context, got %d", tt.expectedUser, gotUserID)
			}
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := GetUserIDFromContext(req.Context()); id != 0 {
		t.Errorf("expected 0 for missing user, got %d", id)
	}
}
