package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wakaf-tunai/internal/cache"
	"github.com/wakaf-tunai/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type fakeVerifier struct {
	claims *service.JWTClaims
	state  *cache.AdminAuthState
	err    error
}

func (f fakeVerifier) ParseJWT(tokenString string) (*service.JWTClaims, error) {
	if tokenString != "good" || f.claims == nil {
		return nil, errors.New("invalid token")
	}
	return f.claims, nil
}

func (f fakeVerifier) ResolveAdminAuthState(_ context.Context, _ uint) (*cache.AdminAuthState, error) {
	return f.state, f.err
}

type fakeEnforcer struct {
	allow bool
	err   error
	calls []string
}

func (f *fakeEnforcer) EnforceAdmin(_ uint, object, action string) (bool, error) {
	f.calls = append(f.calls, action+" "+object)
	return f.allow, f.err
}

func serveAdminPing(t *testing.T, verifier AdminTokenVerifier, enforcer AdminEnforcer, header string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(verifier), AdminRBACMiddleware(enforcer))
	r.GET("/api/v1/admin/donations/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetUint(adminIDContextKey)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/donations/7?lang=en", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return w, body
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	w, body := serveAdminPing(t, fakeVerifier{}, &fakeEnforcer{allow: true}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if body["status_code"] != float64(401) {
		t.Fatalf("status_code want 401 got %v", body["status_code"])
	}
}

func TestJWTAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	w, body := serveAdminPing(t, fakeVerifier{}, &fakeEnforcer{allow: true}, "Token good")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if body["msg"] != "Invalid Authorization header" {
		t.Fatalf("msg want auth header error got %v", body["msg"])
	}
}

func TestJWTAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	verifier := fakeVerifier{
		claims: &service.JWTClaims{AdminID: 3, TokenVersion: 1},
		state:  &cache.AdminAuthState{AdminID: 3, TokenVersion: 2},
	}
	w, body := serveAdminPing(t, verifier, &fakeEnforcer{allow: true}, "Bearer good")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if body["msg"] != "Token has been revoked, please login again" {
		t.Fatalf("msg want revoked got %v", body["msg"])
	}
}

func TestJWTAuthMiddlewareRejectsDeletedAdmin(t *testing.T) {
	verifier := fakeVerifier{claims: &service.JWTClaims{AdminID: 3}}
	w, _ := serveAdminPing(t, verifier, &fakeEnforcer{allow: true}, "Bearer good")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestAdminMiddlewaresAllowValidToken(t *testing.T) {
	verifier := fakeVerifier{
		claims: &service.JWTClaims{AdminID: 3, TokenVersion: 2},
		state:  &cache.AdminAuthState{AdminID: 3, TokenVersion: 2},
	}
	enforcer := &fakeEnforcer{allow: true}
	w, body := serveAdminPing(t, verifier, enforcer, "Bearer good")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if body["admin_id"] != float64(3) {
		t.Fatalf("admin_id want 3 got %v", body["admin_id"])
	}
	if len(enforcer.calls) != 1 || enforcer.calls[0] != "GET /api/v1/admin/donations/:id" {
		t.Fatalf("enforcer should receive route pattern, got %v", enforcer.calls)
	}
}

func TestAdminRBACMiddlewareDenies(t *testing.T) {
	verifier := fakeVerifier{
		claims: &service.JWTClaims{AdminID: 3},
		state:  &cache.AdminAuthState{AdminID: 3},
	}
	w, body := serveAdminPing(t, verifier, &fakeEnforcer{allow: false}, "Bearer good")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	if body["status_code"] != float64(403) {
		t.Fatalf("status_code want 403 got %v", body["status_code"])
	}
}

func TestAdminRBACMiddlewareEnforceError(t *testing.T) {
	verifier := fakeVerifier{
		claims: &service.JWTClaims{AdminID: 3},
		state:  &cache.AdminAuthState{AdminID: 3},
	}
	w, _ := serveAdminPing(t, verifier, &fakeEnforcer{err: errors.New("adapter down")}, "Bearer good")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}
