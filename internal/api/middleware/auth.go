package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/hvztracker/internal/api/apierr"
	"github.com/mcoot/hvztracker/internal/services/auth"
)

// APIKeyHeader is the preferred header for presenting an API key
const APIKeyHeader = "X-API-Key"

type contextKey string

const keyNameContextKey contextKey = "api_key_name"

// KeyValidator checks an API key and returns the name it was issued under
type KeyValidator interface {
	ValidateKey(ctx context.Context, key string) (string, error)
}

var _ KeyValidator = (*auth.Service)(nil)

// APIKey creates middleware rejecting requests without a valid API key
func APIKey(validator KeyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractKey(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			name, err := validator.ValidateKey(r.Context(), key)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), keyNameContextKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractKey reads the key from X-API-Key, falling back to
// "Authorization: Api-Key <key>"
func extractKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key
	}
	scheme, key, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Api-Key") {
		return strings.TrimSpace(key)
	}
	return ""
}

// KeyName returns the name of the API key that authorized the request, or ""
func KeyName(ctx context.Context) string {
	name, _ := ctx.Value(keyNameContextKey).(string)
	return name
}
