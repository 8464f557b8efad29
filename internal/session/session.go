package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieName is the session cookie shared with the browser. The payload is
// encrypted and signed; only the server can read it.
const CookieName = "github-oauth-session"

// cookieMaxAge is one day. Sessions end when the token would plausibly
// need re-checking anyway.
const cookieMaxAge = 60 * 60 * 24

// User holds the profile fields that are safe to return to the browser.
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Store issues and decodes encrypted session cookies
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore creates a session store keyed on the configured secret. The
// signing and encryption keys are derived independently so the secret can
// stay a single opaque string in configuration.
func NewStore(secret string, secure bool) *Store {
	hashKey := sha256.Sum256([]byte(secret))
	blockKey := sha256.Sum256([]byte(secret + "/encryption"))

	cookies := sessions.NewCookieStore(hashKey[:], blockKey[:])
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: cookies}
}

// Session is a mutable view over the cookie-backed state for one request.
// User and AccessToken may be modified freely; nothing reaches the browser
// until Save or Destroy writes a Set-Cookie header.
type Session struct {
	User        *User
	AccessToken string

	raw *sessions.Session
}

// Load decodes the session cookie carried by the request. A missing,
// expired or tampered cookie yields an empty session, never an error.
func (st *Store) Load(r *http.Request) *Session {
	raw, err := st.cookies.Get(r, CookieName)
	if err != nil {
		// Get returns a fresh session alongside decode errors,
		// so a bad cookie is just a logged-out session.
		return &Session{raw: raw}
	}

	s := &Session{raw: raw}
	if token, ok := raw.Values["access_token"].(string); ok {
		s.AccessToken = token
	}
	if login, ok := raw.Values["login"].(string); ok && login != "" {
		s.User = &User{
			Login:     login,
			Name:      stringValue(raw.Values["name"]),
			AvatarURL: stringValue(raw.Values["avatar_url"]),
		}
	}
	return s
}

// Save persists the current User and AccessToken into the cookie
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	if s.User != nil {
		s.raw.Values["login"] = s.User.Login
		s.raw.Values["name"] = s.User.Name
		s.raw.Values["avatar_url"] = s.User.AvatarURL
	} else {
		delete(s.raw.Values, "login")
		delete(s.raw.Values, "name")
		delete(s.raw.Values, "avatar_url")
	}

	if s.AccessToken != "" {
		s.raw.Values["access_token"] = s.AccessToken
	} else {
		delete(s.raw.Values, "access_token")
	}

	return s.raw.Save(r, w)
}

// Destroy clears the session and expires the cookie. Destroying an already
// destroyed session is a no-op with the same outcome.
func (s *Session) Destroy(w http.ResponseWriter, r *http.Request) error {
	s.User = nil
	s.AccessToken = ""

	for key := range s.raw.Values {
		delete(s.raw.Values, key)
	}
	s.raw.Options.MaxAge = -1

	return s.raw.Save(r, w)
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
