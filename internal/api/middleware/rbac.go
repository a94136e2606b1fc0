package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
