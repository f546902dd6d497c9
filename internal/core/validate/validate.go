// Package validate turns untrusted request bodies into normalized domain
// inputs. Every validator is a pure function: it reads a decoded JSON object
// and either returns a typed value or an *Error naming the broken rule.
//
// Bodies arrive as Fields (map[string]any) so an absent key stays distinct
// from a zero value.
package validate

import (
	"strings"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// Fields is a decoded JSON object. Numbers are float64, as produced by
// encoding/json.
type Fields map[string]any

// Error is a rejected input. It wraps domain.ErrValidation so callers can
// match it with errors.Is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return domain.ErrValidation }

func reject(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}

// has reports whether key is present, even when its value is null.
func (f Fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

// truthy follows JSON-value truthiness: null, false, 0 and "" are falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

func trimmedLen(s string) int {
	return len([]rune(strings.TrimSpace(s)))
}
