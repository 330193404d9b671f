package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

// CookiePolicy holds the deployment-dependent cookie attributes.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

// PolicyFor returns the strict cross-site policy in production (the client is
// served from another origin over TLS) and the relaxed one otherwise.
func PolicyFor(production bool) CookiePolicy {
	if production {
		return CookiePolicy{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: http.SameSiteLaxMode}
}

// Set writes the session cookie.
func (p CookiePolicy) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, p.cookie(token, expires))
}

// Clear overwrites the session cookie with an already expired empty value.
func (p CookiePolicy) Clear(w http.ResponseWriter) {
	c := p.cookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (p CookiePolicy) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
