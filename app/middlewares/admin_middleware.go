package middlewares

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/unrolled/render"
)

// RequireAuthForAction guards routes behind identity.Require. Anonymous GET
// requests have their URL saved as the return URL and are redirected to
// /login. Other methods get a 401 body pointing there and save nothing, as
// their paths cannot be revisited with a GET. Signed-in users without the
// capability get a 403.
func RequireAuthForAction(identity *services.IdentityService, store sessions.SessionStore, rd *render.Render, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.CurrentUser(r)

			err := identity.Require(user, action)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			if user == nil {
				if r.Method == http.MethodGet {
					if saveErr := store.SetReturnURL(w, r, r.URL.RequestURI()); saveErr != nil {
						log.Printf("RequireAuthForAction: failed to save return URL: %v", saveErr)
					}
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
			} else {
				log.Printf("RequireAuthForAction: user %s (%s) denied %s", user.ID, user.Email, action)
			}

			rd.JSON(w, helpers.ErrorStatus(err), helpers.ErrorBody(err))
		})
	}
}

// AdminAuthMiddleware admits only allow-listed admins.
func AdminAuthMiddleware(identity *services.IdentityService, store sessions.SessionStore, rd *render.Render) func(http.Handler) http.Handler {
	return RequireAuthForAction(identity, store, rd, services.ActionAdminDashboard)
}
