package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/db/testdb"
	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/renderer"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	identity *services.IdentityService
	store    *sessions.CookieSessionStore
	customer *models.User
	admin    *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	db := testdb.Open(t)
	identity := services.NewIdentityService(repositories.NewUserRepository(db), []string{"boss@shop.test"}, []byte("middleware-test-secret"))

	signUp := func(email string) *models.User {
		u, err := identity.SignUp(context.Background(), services.SignUpForm{
			Email: email, Password: "secret1", ConfirmPassword: "secret1",
		})
		require.NoError(t, err)
		return u
	}

	return &authFixture{
		identity: identity,
		store:    sessions.NewCookieSessionStore(false, []byte("0123456789abcdef0123456789abcdef")),
		customer: signUp("mona@shop.test"),
		admin:    signUp("boss@shop.test"),
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func withUser(r *http.Request, user *models.User, isAdmin bool) *http.Request {
	return r.WithContext(helpers.WithUser(r.Context(), user, isAdmin))
}

func TestRequireAuthForAction(t *testing.T) {
	f := newAuthFixture(t)
	guard := RequireAuthForAction(f.identity, f.store, renderer.New(false), services.ActionAdminOrders)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	next := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	saved, err := f.store.PopReturnURL(httptest.NewRecorder(), next)
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders?status=pending", saved)

	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/orders/1/status", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/login"`)
	assert.Empty(t, rec.Result().Cookies(), "non-GET requests must not set a return URL")

	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/admin/orders", nil), f.customer, false))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/admin/orders", nil), f.admin, true))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)

	var seen *models.User
	var seenAdmin bool
	h := Authenticate(f.identity, f.store, renderer.New(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = helpers.CurrentUser(r)
		seenAdmin = helpers.IsAdmin(r)
	}))

	token, _, err := f.identity.IssueToken(f.admin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, f.admin.ID, seen.ID)
	assert.True(t, seenAdmin)

	rec := httptest.NewRecorder()
	require.NoError(t, f.store.SetUserID(rec, httptest.NewRequest(http.MethodGet, "/", nil), f.customer.ID))
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	seen = nil
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, f.customer.ID, seen.ID)
	assert.False(t, seenAdmin)

	seen = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Nil(t, seen)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "bearer abc")
	token, ok := BearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	req.Header.Set("Authorization", "Basic abc")
	_, ok = BearerToken(req)
	assert.False(t, ok)
}

func TestMethodOverride(t *testing.T) {
	var method string
	h := MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	form := url.Values{"_method": {"delete"}}
	req := httptest.NewRequest(http.MethodPost, "/cart/items/0", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, method)

	req = httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"_method":"DELETE"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodPost, method)
}

func TestCSRFSkipsBearerRequests(t *testing.T) {
	h := CSRF([]byte("0123456789abcdef0123456789abcdef"), false)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	CSRF(nil, false)(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
