package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/unrolled/render"
)

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

// Authenticate resolves the current user from a bearer token or the session
// cookie and stores it in the request context. A bad bearer token is
// rejected outright; a stale session just leaves the request anonymous.
func Authenticate(identity *services.IdentityService, store sessions.SessionStore, rd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := ""
			if raw, ok := BearerToken(r); ok {
				id, err := identity.ParseToken(raw)
				if err != nil {
					rd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
					return
				}
				userID = id
				ctx = context.WithValue(ctx, helpers.ContextKeyBearer, true)
			} else {
				userID = store.GetUserID(r)
			}

			if userID != "" {
				user, err := identity.FindUser(ctx, userID)
				if err != nil {
					log.Printf("Authenticate: failed to load user %s: %v", userID, err)
				}
				if user != nil {
					ctx = helpers.WithUser(ctx, user, identity.IsAdmin(user))
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware puts the signed-in user's cart count in the context.
// It is read from the stored cart on every request, so changes made from
// another browser or an API client show up immediately.
func CartCountMiddleware(carts *services.CartService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := helpers.CurrentUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			cart, err := carts.GetUserCart(r.Context(), userID)
			if err != nil {
				log.Printf("CartCountMiddleware: Error getting cart count for user %s: %v", userID, err)
			}
			count := cart.ItemCount()

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MethodOverrideMiddleware lets HTML forms send PUT and DELETE through a
// "_method" field on a urlencoded POST.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			_ = r.ParseForm()
			switch override := strings.ToUpper(r.PostForm.Get("_method")); override {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}
