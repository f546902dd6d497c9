package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/validate"
)

func TestHTTPErrorHandler(t *testing.T) {
	_, verr := validate.ProductPatch(validate.Fields{})

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", verr, http.StatusBadRequest, "at least one field required"},
		{"wrapped validation", fmt.Errorf("update: %w", verr), http.StatusBadRequest, "at least one field required"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "no token provided"), http.StatusUnauthorized, "no token provided"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"product missing", fmt.Errorf("get: %w", domain.ErrProductNotFound), http.StatusNotFound, "product not found"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "email already registered"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden: insufficient permissions"},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tc.message}, body)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
