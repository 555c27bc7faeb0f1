package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "admin", "role": role, "exp": exp.Unix()}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func protectedServer(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/admin")
	g.Use(JWTAuth(secret))
	g.Use(RequireRole("ADMIN"))
	g.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func adminRequest(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protectedServer("secret")
	future := time.Now().Add(time.Hour)

	if rec := adminRequest(e, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header = %d, want 401", rec.Code)
	}
	if rec := adminRequest(e, "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token = %d, want 401", rec.Code)
	}
	if rec := adminRequest(e, "Bearer "+signToken(t, "other-secret", "ADMIN", future)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret = %d, want 401", rec.Code)
	}
	if rec := adminRequest(e, "Bearer "+signToken(t, "secret", "ADMIN", time.Now().Add(-time.Minute))); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token = %d, want 401", rec.Code)
	}
	if rec := adminRequest(e, "Bearer "+signToken(t, "secret", "USER", future)); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role = %d, want 403", rec.Code)
	}
	if rec := adminRequest(e, "Bearer "+signToken(t, "secret", "ADMIN", future)); rec.Code != http.StatusOK {
		t.Fatalf("valid admin token = %d, want 200", rec.Code)
	}
}
