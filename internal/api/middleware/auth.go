package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ManuelTrajcev/SQAT-Project/internal/api/metrics"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/ports"
)

// claimsKey is the echo context key under which verified claims are stored.
const claimsKey = "claims"

// Auth validates the bearer token and injects the verified claims into the
// request context. Missing, malformed, expired and badly signed tokens all
// produce the same 401.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenVerifyTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerifyTotal.WithLabelValues("valid").Inc()

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}
