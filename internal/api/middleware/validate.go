package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/core/validate"
)

// ValidatedKey is the echo context key holding the typed validator output.
const ValidatedKey = "validated"

// ErrInvalidPayload is returned when the body is not a single JSON object.
var ErrInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// Validator turns raw request fields into a typed input or a *validate.Error.
type Validator[T any] func(validate.Fields) (T, error)

// Validate decodes the JSON body, runs fn on it and stores the result under
// ValidatedKey. A rejected body never reaches the next handler.
func Validate[T any](fn Validator[T]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fields, err := decodeFields(c)
			if err != nil {
				return err
			}

			in, err := fn(fields)
			if err != nil {
				metrics.ValidationFailuresTotal.WithLabelValues(c.Path()).Inc()
				return err
			}

			c.Set(ValidatedKey, in)
			return next(c)
		}
	}
}

// Validated returns the value stored by Validate.
func Validated[T any](c echo.Context) (T, bool) {
	v, ok := c.Get(ValidatedKey).(T)
	return v, ok
}

func decodeFields(c echo.Context) (validate.Fields, error) {
	dec := json.NewDecoder(c.Request().Body)
	var fields validate.Fields
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, ErrInvalidPayload
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidPayload
	}
	return fields, nil
}
