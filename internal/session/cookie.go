package session

import (
	"net/http"
	"time"
)

// Cookie builds the session cookie sent on login and on every refreshed
// request. HttpOnly keeps the token away from scripts; SameSite=Lax lets
// the browser frontends on other ports send it on top-level navigations.
func Cookie(name, token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds the cookie sent on logout to clear the token from
// the browser.
func ExpiredCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
