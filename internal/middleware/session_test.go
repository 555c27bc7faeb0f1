package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func resolveSession(t *testing.T, decorate func(*http.Request)) string {
	t.Helper()
	e := echo.New()
	var got string
	e.GET("/probe", func(c echo.Context) error {
		got = SessionFromContext(c)
		return c.NoContent(http.StatusOK)
	}, SessionToken())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	decorate(req)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("probe = %d", rec.Code)
	}
	return got
}

func TestSessionTokenFromHeader(t *testing.T) {
	got := resolveSession(t, func(r *http.Request) {
		r.Header.Set(SessionHeader, "my-token")
	})
	if got != "my-token" {
		t.Fatalf("session = %q, want header value", got)
	}
}

func TestSessionTokenFallsBackToRemoteIP(t *testing.T) {
	got := resolveSession(t, func(r *http.Request) {
		r.RemoteAddr = "203.0.113.7:54321"
	})
	if got != "203.0.113.7" {
		t.Fatalf("session = %q, want remote IP", got)
	}
}

func TestSessionFromContextWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := SessionFromContext(c); got != "" {
		t.Fatalf("session = %q, want empty without middleware", got)
	}
}
