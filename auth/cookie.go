package auth

import (
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "accessToken"

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// TokenFromRequest looks for a token in the session cookie, then the
// Authorization bearer header, then the "token" query parameter.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return tokenFromHeaderOrQuery(r)
}

// TokenFromHandshake resolves the token of a socket upgrade request. The raw
// Cookie header is parsed directly since the handshake bypasses cookie
// middleware.
func TokenFromHandshake(r *http.Request) string {
	if token := TokenFromCookieHeader(strings.Join(r.Header.Values("Cookie"), "; ")); token != "" {
		return token
	}
	return tokenFromHeaderOrQuery(r)
}

// TokenFromCookieHeader extracts the session token from a raw Cookie header
// value such as "theme=dark; accessToken=abc".
func TokenFromCookieHeader(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	req := &http.Request{Header: http.Header{"Cookie": {header}}}
	c, err := req.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func tokenFromHeaderOrQuery(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
