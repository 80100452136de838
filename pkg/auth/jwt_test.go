package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, err := issuer.Sign("user-1", "ana@example.com", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@example.com" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _ := NewIssuer("secret-a", time.Hour).Sign("user-1", "ana@example.com", "admin")
	if _, err := NewIssuer("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	token, _ := issuer.Sign("user-1", "ana@example.com", "admin")
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestMiddleware(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	handler := issuer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := FromContext(r.Context())
		if claims == nil {
			t.Error("expected claims in request context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	token, _ := issuer.Sign("user-1", "ana@example.com", "admin")
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	handler := issuer.Middleware(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	token, _ := issuer.Sign("user-1", "ana@example.com", "customer")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for customer role, got %d", w.Code)
	}
}
