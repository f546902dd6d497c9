package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/middleware"
)

// actorID returns the authenticated caller's id, or "" on public routes.
func actorID(c echo.Context) string {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return ""
	}
	return identity.ID
}
