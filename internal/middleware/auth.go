package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/brewline/coffee-api/internal/config"
)

// AdminKeyHeader carries the admin API key
const AdminKeyHeader = "api_key"

// RequireAdmin only lets requests carrying a configured admin key through.
// A missing key is answered with 401, an unknown key with 403.
func RequireAdmin(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(AdminKeyHeader)

			if apiKey == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized: API key required")
				return
			}

			valid := false
			for _, adminKey := range cfg.AdminKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminKey)) == 1 {
					valid = true
					break
				}
			}

			if !valid {
				writeError(w, http.StatusForbidden, "Forbidden: Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
