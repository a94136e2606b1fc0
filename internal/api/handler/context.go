package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/api/middleware"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without it, which is reported as 401.
func ctxClaims(c echo.Context) (*ports.TokenClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

func ctxActor(c echo.Context) (ports.Actor, error) {
	claims, err := ctxClaims(c)
	if err != nil {
		return ports.Actor{}, err
	}
	return claims.Actor(), nil
}
