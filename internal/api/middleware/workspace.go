package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ManuelTrajcev/SQAT-Project/internal/api/metrics"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

// roleKey is the echo context key holding the role granted for the target
// workspace after RequireWorkspaceRole ran.
const roleKey = "workspace_role"

// GetClaims extracts the claims injected by the Auth middleware.
func GetClaims(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

// GrantedRole extracts the workspace role resolved by RequireWorkspaceRole.
func GrantedRole(c echo.Context) domain.Role {
	role, _ := c.Get(roleKey).(domain.Role)
	return role
}

// RequireWorkspaceRole gates a route on the caller holding at least the
// required role on the workspace named by the :id path parameter. Lack of a
// claim and an insufficient role are both reported as 403 without revealing
// whether the workspace exists.
func RequireWorkspaceRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role, err := domain.Authorize(claims, c.Param("id"), required)
			if err != nil {
				metrics.AuthzDecisionsTotal.WithLabelValues("deny").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			metrics.AuthzDecisionsTotal.WithLabelValues("allow").Inc()

			c.Set(roleKey, role)
			return next(c)
		}
	}
}
