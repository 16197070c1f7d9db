package middleware

import (
	"context"
	"net/http"

	"roost/session"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const principalKey contextKey = "principal"

// WithSession extracts the session token from the request cookie, verifies
// it, and stores the resulting principal in the request context. A missing
// cookie and an invalid or expired token are treated the same way: the
// request proceeds with no principal, and the route decides how to react.
func WithSession(codec *session.Codec, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			if claims, err := codec.Verify(cookie.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), principalKey, claims))
			}
		}
		next(w, r, ps)
	}
}

// Principal returns the authenticated identity derived by WithSession, or
// nil when the request carried no valid session.
func Principal(r *http.Request) *session.Claims {
	claims, _ := r.Context().Value(principalKey).(*session.Claims)
	return claims
}

// WithPrincipal stores a principal directly in the request context. Used
// by tests to invoke handlers without going through WithSession.
func WithPrincipal(r *http.Request, claims *session.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, claims))
}
