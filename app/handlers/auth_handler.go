package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	identity     *services.IdentityService
	carts        *services.CartService
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, identity *services.IdentityService, carts *services.CartService, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		identity:     identity,
		carts:        carts,
		sessionStore: sessionStore,
	}
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if user := helpers.CurrentUser(r); user != nil {
		helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
			"redirect": "/",
		})
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"message":       "Please sign in to continue.",
		"messageStatus": "info",
	})
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	user, err := h.identity.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	h.startSession(w, r, user, "Welcome back!")
}

func (h *AuthHandler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var form services.SignUpForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	user, err := h.identity.SignUp(r.Context(), form)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	h.startSession(w, r, user, "Your account has been created.")
}

// startSession signs user in and sends them to the saved return URL.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, message string) {
	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.startSession: failed to save session for user %s: %v", user.ID, err)
		helpers.RenderError(h.render, w, r, &services.BackendUnavailableError{Op: "save session", Err: err})
		return
	}

	cart, err := h.carts.GetUserCart(r.Context(), user.ID)
	if err != nil {
		log.Printf("AuthHandler.startSession: failed to load cart for user %s: %v", user.ID, err)
	}

	redirect, err := h.sessionStore.PopReturnURL(w, r)
	if err != nil {
		log.Printf("AuthHandler.startSession: failed to pop return URL: %v", err)
	}
	if redirect == "" || redirect[0] != '/' || (len(redirect) > 1 && redirect[1] == '/') {
		redirect = "/"
	}

	ctx := helpers.WithUser(r.Context(), user, h.identity.IsAdmin(user))
	ctx = context.WithValue(ctx, helpers.CartCountKey, cart.ItemCount())
	r = r.WithContext(ctx)

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"user":          user,
		"isAdmin":       h.identity.IsAdmin(user),
		"redirect":      redirect,
		"message":       message,
		"messageStatus": "success",
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.LogoutHandler: failed to clear session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"redirect":      "/",
		"message":       "You have been signed out.",
		"messageStatus": "success",
	})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	if user == nil {
		helpers.RenderError(h.render, w, r, &services.AuthRequiredError{Action: "view your profile"})
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"user":    user,
		"isAdmin": helpers.IsAdmin(r),
	})
}

func (h *AuthHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := helpers.CurrentUser(r)
	if user == nil {
		helpers.RenderError(h.render, w, r, &services.AuthRequiredError{Action: "update your profile"})
		return
	}

	var form services.ProfileForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	updated, err := h.identity.UpdateProfile(r.Context(), user.ID, form)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	helpers.RenderJSON(h.render, w, r, http.StatusOK, map[string]interface{}{
		"user":          updated,
		"message":       "Profile updated.",
		"messageStatus": "success",
	})
}

// TokenHandler exchanges credentials for a bearer token.
func (h *AuthHandler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := helpers.DecodeJSON(r, &form); err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	user, err := h.identity.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		helpers.RenderError(h.render, w, r, err)
		return
	}

	token, expires, err := h.identity.IssueToken(user)
	if err != nil {
		log.Printf("AuthHandler.TokenHandler: %v", err)
		helpers.RenderError(h.render, w, r, &services.BackendUnavailableError{Op: "issue token", Err: err})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"tokenType": "Bearer",
		"expiresAt": expires.UTC().Format(time.RFC3339),
	})
}
