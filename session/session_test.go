package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 10*time.Hour)

	token, err := codec.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "u123" || claims.Email != "a@x.com" || claims.Name != "A" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewCodec([]byte("secret-one"), time.Hour)
	verifier := NewCodec([]byte("secret-two"), time.Hour)

	token, err := issuer.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), -time.Minute)

	token, err := codec.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrMalformed) {
			t.Fatalf("token %q: expected ErrMalformed, got %v", token, err)
		}
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	tokenA, err := codec.Issue("u123", "a@x.com", "A")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	tokenB, err := codec.Issue("u456", "b@x.com", "B")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// B's claims under A's signature
	partsA := strings.Split(tokenA, ".")
	partsB := strings.Split(tokenB, ".")
	spliced := partsB[0] + "." + partsB[1] + "." + partsA[2]

	if _, err := codec.Verify(spliced); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
