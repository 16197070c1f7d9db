package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roost/session"

	"github.com/julienschmidt/httprouter"
)

func principalFor(t *testing.T, codec *session.Codec, cookie *http.Cookie) *session.Claims {
	t.Helper()

	var got *session.Claims
	handler := WithSession(codec, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = Principal(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	handler(httptest.NewRecorder(), r, nil)
	return got
}

func TestWithSessionNoCookie(t *testing.T) {
	codec := session.NewCodec([]byte("test-secret"), time.Hour)
	if got := principalFor(t, codec, nil); got != nil {
		t.Fatalf("expected no principal, got %+v", got)
	}
}

func TestWithSessionValidCookie(t *testing.T) {
	codec := session.NewCodec([]byte("test-secret"), time.Hour)
	token, err := codec.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got := principalFor(t, codec, &http.Cookie{Name: session.CookieName, Value: token})
	if got == nil {
		t.Fatal("expected a principal")
	}
	if got.UserID != "u123" || got.Email != "a@x.com" || got.Name != "A" {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestWithSessionInvalidToken(t *testing.T) {
	codec := session.NewCodec([]byte("test-secret"), time.Hour)
	got := principalFor(t, codec, &http.Cookie{Name: session.CookieName, Value: "garbage"})
	if got != nil {
		t.Fatalf("expected no principal for invalid token, got %+v", got)
	}
}

func TestWithSessionExpiredToken(t *testing.T) {
	issuer := session.NewCodec([]byte("test-secret"), -time.Minute)
	token, err := issuer.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	codec := session.NewCodec([]byte("test-secret"), time.Hour)
	got := principalFor(t, codec, &http.Cookie{Name: session.CookieName, Value: token})
	if got != nil {
		t.Fatalf("expected no principal for expired token, got %+v", got)
	}
}
