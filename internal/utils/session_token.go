package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSessionSecretMissing = errors.New("session secret is not configured")

// SessionClaims is what the session cookie carries: the opaque session id and
// its expiry. Everything else lives server side.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTokens signs and verifies session cookie values.
type SessionTokens struct {
	secret []byte
}

func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret)}
}

// Sign creates a token for the given session id.
func (t *SessionTokens) Sign(sessionID string, expiresAt time.Time) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrSessionSecretMissing
	}
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates a token and returns its claims.
func (t *SessionTokens) Parse(tokenStr string) (*SessionClaims, error) {
	if len(t.secret) == 0 {
		return nil, ErrSessionSecretMissing
	}
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}
