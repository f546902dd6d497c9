package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/metrics"
)

// Authorize enforces role-based access control. It must run after
// Authenticate. Role matching is exact; an empty role set denies everyone.
func Authorize(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonNotAuthenticated).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonForbidden).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden: insufficient permissions")
			}
			return next(c)
		}
	}
}
