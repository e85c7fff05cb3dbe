package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *CookieSessionStore {
	return NewCookieSessionStore(false, []byte("0123456789abcdef0123456789abcdef"))
}

// carry copies the cookies set on rec onto a new request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestUserIDRoundTrip(t *testing.T) {
	store := newStore()

	rec := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1"))

	assert.Equal(t, "user-1", store.GetUserID(carry(rec)))
}

func TestPopReturnURLForgetsValue(t *testing.T) {
	store := newStore()

	rec := httptest.NewRecorder()
	require.NoError(t, store.SetReturnURL(rec, httptest.NewRequest(http.MethodGet, "/", nil), "/cart"))

	rec2 := httptest.NewRecorder()
	got, err := store.PopReturnURL(rec2, carry(rec))
	require.NoError(t, err)
	assert.Equal(t, "/cart", got)

	got, err = store.PopReturnURL(httptest.NewRecorder(), carry(rec2))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClearSessionSignsOut(t *testing.T) {
	store := newStore()

	rec := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1"))
	require.Equal(t, "user-1", store.GetUserID(carry(rec)))

	rec2 := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(rec2, carry(rec)))
	assert.Empty(t, store.GetUserID(carry(rec2)))
}
