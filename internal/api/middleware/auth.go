package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

const claimsKey = "claims"

// Auth verifies the bearer token through authn and injects the claims into
// the context.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := authn.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (*ports.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(*ports.TokenClaims)
	return claims, ok && claims != nil
}
