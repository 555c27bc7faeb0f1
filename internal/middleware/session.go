package middleware

// session.go resolves the opaque visitor identity for API requests.  The
// token travels in the X-Session-Id header; when a client does not send
// one the remote IP stands in, a deliberately weak fallback that keeps
// headerless clients working at the cost of shared-IP collisions.

import "github.com/labstack/echo/v4"

// SessionHeader is the request header carrying the opaque session token.
const SessionHeader = "X-Session-Id"

const sessionContextKey = "session_token"

// SessionToken returns middleware that extracts the session token from
// the request and stores it in the context for handlers to read via
// SessionFromContext.  The middleware never creates users; whether a
// token materializes a row is each endpoint's decision.
func SessionToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(SessionHeader)
			if token == "" {
				token = c.RealIP()
			}
			c.Set(sessionContextKey, token)
			return next(c)
		}
	}
}

// SessionFromContext returns the session token stored by SessionToken,
// or the empty string when the middleware did not run.
func SessionFromContext(c echo.Context) string {
	if v, ok := c.Get(sessionContextKey).(string); ok {
		return v
	}
	return ""
}
