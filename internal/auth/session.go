// Package auth issues and validates participant session tokens.
//
// There are no accounts or passwords. A session token only records which
// participant a device has selected, plus any ad hoc names that device
// added to the roster.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session")
	ErrMissingToken = errors.New("no participant selected")
)

// SessionManager signs and checks session tokens.
type SessionManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims are the session token claims.
type Claims struct {
	Participant string   `json:"participant"`
	Extra       []string `json:"extra,omitempty"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager. A zero tokenDuration issues
// tokens that never expire.
func NewSessionManager(secretKey string, tokenDuration time.Duration) *SessionManager {
	return &SessionManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Issue creates a token for participant. extra lists names this device
// added to the roster.
func (m *SessionManager) Issue(participant string, extra []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Participant: participant,
		Extra:       extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participant,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if m.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses a token and returns its claims.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Participant == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
