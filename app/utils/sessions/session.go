package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "khayal-session"

	userIDSessionKey    = "userID"
	returnURLSessionKey = "returnUrl"
)

type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error

	// SetReturnURL remembers where to send the user after login.
	SetReturnURL(w http.ResponseWriter, r *http.Request, returnURL string) error
	// PopReturnURL returns the remembered destination and forgets it.
	PopReturnURL(w http.ResponseWriter, r *http.Request) (string, error)

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session.
		log.Printf("CookieSessionStore: error decoding session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	userID, _ := c.getSession(r).Values[userIDSessionKey].(string)
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) SetReturnURL(w http.ResponseWriter, r *http.Request, returnURL string) error {
	session := c.getSession(r)
	session.Values[returnURLSessionKey] = returnURL
	return session.Save(r, w)
}

func (c *CookieSessionStore) PopReturnURL(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	returnURL, _ := session.Values[returnURLSessionKey].(string)
	if returnURL == "" {
		return "", nil
	}
	delete(session.Values, returnURLSessionKey)
	return returnURL, session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
