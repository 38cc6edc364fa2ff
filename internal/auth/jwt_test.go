package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := SignJWT(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	uid, err := ParseJWT(tok, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected 42, got %d", uid)
	}
}

func TestJWT_Rejects(t *testing.T) {
	good, err := SignJWT(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expired, err := SignJWT(42, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	zero, err := SignJWT(0, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]struct {
		token  string
		secret string
	}{
		"wrong secret": {good, "other"},
		"expired":      {expired, "secret"},
		"zero user":    {zero, "secret"},
		"garbage":      {"not-a-jwt", "secret"},
	}
	for name, tc := range cases {
		if _, err := ParseJWT(tc.token, tc.secret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
