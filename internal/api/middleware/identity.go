package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Cheertaboi/storefront-service/internal/identity"
)

// Identify attaches the forwarded principal to the request context.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := identity.FromRequest(r)
		next.ServeHTTP(w, r.WithContext(identity.WithPrincipal(r.Context(), p)))
	})
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identity.FromContext(r.Context()).Authenticated() {
			deny(w, http.StatusUnauthorized, "not_logged_in", "Please log in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := identity.FromContext(r.Context())
		if !p.Authenticated() {
			deny(w, http.StatusUnauthorized, "not_logged_in", "Please log in")
			return
		}
		if !p.IsAdmin() {
			deny(w, http.StatusForbidden, "not_authorized", "You are not authorized.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
