package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the authenticated domain.Identity.
const IdentityKey = "identity"

const (
	msgNoToken      = "no token provided"
	msgUnauthorized = "unauthorized"
)

// Authenticate verifies the bearer token and stores the decoded identity on
// the context. The next handler only runs for a valid token.
func Authenticate(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonNoToken).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}

			identity, err := verifier.ParseToken(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonInvalidToken).Inc()
				log.Debug().
					Err(err).
					Str("path", c.Path()).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok
}

// bearerToken splits the header on a single space and returns the second
// segment. Any scheme other than Bearer counts as no token.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
