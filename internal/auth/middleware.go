package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// RequireAuth wraps a handler to require a valid session cookie or bearer
// token. Session info is passed to handlers through request headers, the
// impersonation flag included.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := a.sessionFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "authentication required"}`))
			return
		}

		r.Header.Set("X-User-ID", fmt.Sprintf("%d", session.UserID))
		r.Header.Set("X-Username", session.Username)
		if session.Impersonated {
			r.Header.Set("X-Impersonated", "true")
		} else {
			r.Header.Del("X-Impersonated")
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Auth) sessionFromRequest(r *http.Request) (*Session, bool) {
	if cookie, err := r.Cookie("session"); err == nil {
		if session, ok := a.ValidateSession(cookie.Value); ok {
			return session, true
		}
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return a.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	}
	return nil, false
}

// Impersonated reports whether the request carries an impersonated
// session, as stamped by RequireAuth.
func Impersonated(r *http.Request) bool {
	return r.Header.Get("X-Impersonated") == "true"
}
