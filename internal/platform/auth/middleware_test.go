package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beds", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return nil })
	return c, h(c)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: "Dr. Chen",
		Role: "charge_nurse",
	})

	c, err := invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected valid token to pass: %v", err)
	}

	ctx := c.Request().Context()
	if got := ActorFromContext(ctx); got != "Dr. Chen" {
		t.Errorf("actor = %q, want Dr. Chen", got)
	}
	if got := RoleFromContext(ctx); got != "charge_nurse" {
		t.Errorf("role = %q, want charge_nurse", got)
	}
}

func TestJWTMiddleware_FallsBackToSubject(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	c, err := invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected valid token to pass: %v", err)
	}
	if got := ActorFromContext(c.Request().Context()); got != "u-17" {
		t.Errorf("actor = %q, want subject u-17", got)
	}
}

func TestJWTMiddleware_RejectsMissingHeader(t *testing.T) {
	_, err := invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_RejectsMalformedHeader(t *testing.T) {
	_, err := invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "Token abc")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_RejectsWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "Bearer "+s)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_RejectsExpiredToken(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := invoke(t, JWTMiddleware(JWTConfig{SigningKey: testSecret}), "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestDevAuthMiddleware_SetsDefaultActor(t *testing.T) {
	c, err := invoke(t, DevAuthMiddleware(), "")
	if err != nil {
		t.Fatalf("dev middleware should not fail: %v", err)
	}
	if got := ActorFromContext(c.Request().Context()); got != "dev-user" {
		t.Errorf("actor = %q, want dev-user", got)
	}
}

func TestRequireRole(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: "Nurse Park",
		Role: "nurse",
	})

	e := echo.New()
	run := func(mw echo.MiddlewareFunc) error {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/beds/1/status", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := JWTMiddleware(JWTConfig{SigningKey: testSecret})(mw(func(c echo.Context) error { return nil }))
		return h(c)
	}

	if err := run(RequireRole("nurse", "admin")); err != nil {
		t.Errorf("nurse should be allowed: %v", err)
	}
	assertHTTPStatus(t, run(RequireRole("admin")), http.StatusForbidden)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Errorf("status = %d, want %d", he.Code, want)
	}
}
