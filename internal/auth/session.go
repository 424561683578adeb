package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "shire"

// ErrInvalidSession is returned for cookies that fail signature or claim checks
var ErrInvalidSession = errors.New("invalid session")

// SessionClaims is the signed payload of the session cookie. The subject
// holds the username, the only durable claim a session carries.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session cookie values
type SessionCodec struct {
	secret []byte
	now    func() time.Time
}

// NewSessionCodec creates a codec keyed by secret
func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), now: time.Now}
}

// Encode creates a signed session value carrying username. Sessions have no
// expiry; they end when the cookie is cleared.
func (c *SessionCodec) Encode(username string) (string, error) {
	if username == "" {
		return "", errors.New("empty username")
	}
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   sessionIssuer,
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return tokenString, nil
}

// Decode validates a session value and returns the username it carries
func (c *SessionCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
