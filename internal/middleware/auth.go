package middleware

import (
	"net/http"
	"strings"
)

// Auth creates a bearer-token authentication middleware for http.Handler.
// An empty configured token rejects everything rather than opening the
// console up.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if token == "" || !strings.HasPrefix(authHeader, "Bearer ") || authHeader != "Bearer "+token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
