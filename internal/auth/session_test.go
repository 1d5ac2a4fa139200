package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionManager(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Issue("Iwa", []string{"Budi"})
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.Participant != "Iwa" {
			t.Errorf("Participant = %q, want Iwa", claims.Participant)
		}
		if len(claims.Extra) != 1 || claims.Extra[0] != "Budi" {
			t.Errorf("Extra = %v, want [Budi]", claims.Extra)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewSessionManager("other-secret", time.Hour).Issue("Iwa", nil)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			Participant: "Iwa",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("no expiry", func(t *testing.T) {
		token, _ := NewSessionManager("test-secret", 0).Issue("Caca", nil)
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil", claims.ExpiresAt)
		}
	})
}
