package middlewares

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRF protects cookie-authenticated requests with gorilla/csrf. Requests
// carrying a bearer token skip the check. A nil key disables protection.
func CSRF(key []byte, secure bool) func(http.Handler) http.Handler {
	if key == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.RequestHeader("X-CSRF-Token"),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := BearerToken(r); ok {
				r = csrf.UnsafeSkipCheck(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
