package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ClaimsFromContext extracts the typed session claims set by the JWT
// middleware. Returns nil when the request carries no valid token.
func ClaimsFromContext(c echo.Context) *Claims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// RejectRevokedSessions returns middleware that blocks tokens whose
// session has been revoked by logout. Runs after the JWT middleware.
func RejectRevokedSessions(store SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if store.IsSessionRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
			}
			return next(c)
		}
	}
}
