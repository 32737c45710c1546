package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
)

// QueryValue returns the first non-empty value among the given parameter
// names, so endpoints can accept both camelCase and snake_case spellings.
func QueryValue(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if raw := strings.TrimSpace(r.URL.Query().Get(key)); raw != "" {
			return raw
		}
	}
	return ""
}

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
