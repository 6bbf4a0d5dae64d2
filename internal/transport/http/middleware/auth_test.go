package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perfhub/internal/domain/auth"
)

const testSecret = "test-secret"

func TestAuthAttachesUser(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID:   "u1",
		TenantID: "t1",
		RoleID:   "r1",
		RoleName: auth.RoleManager,
	}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got auth.UserContext
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("user not attached to context")
	}
	if got.UserID != "u1" || got.TenantID != "t1" || got.RoleName != auth.RoleManager {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("invalid token should not attach a user")
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured == "" {
		t.Fatal("request id not generated")
	}
	if rec.Header().Get("X-Request-ID") != captured {
		t.Fatal("request id header does not match context value")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured != "fixed-id" {
		t.Fatalf("request id = %q, want fixed-id", captured)
	}
}
