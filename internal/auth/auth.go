// Package auth is the password/session collaborator. The core store never
// sees credentials; the CLI verifies the shared back-office password here
// and carries a short-lived session token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gokturk078/cektakip/internal/common"
)

type Authenticator struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func New(passwordHash, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		passwordHash: passwordHash,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// Login verifies the shared password and issues a session token. The
// password slice should be wiped by the caller afterwards.
func (a *Authenticator) Login(password []byte) (string, error) {
	if !a.verifyPassword(password) {
		return "", common.ErrUnauthorized
	}

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(a.now()),
		ExpiresAt: jwt.NewNumericDate(a.now().Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks that the session token is well-formed, signed by us, and
// not expired.
func (a *Authenticator) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return a.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}

// verifyPassword accepts bcrypt hashes and, for compatibility with the
// historical deployment, hex-encoded SHA-256 digests compared in constant
// time.
func (a *Authenticator) verifyPassword(password []byte) bool {
	if strings.HasPrefix(a.passwordHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), password) == nil
	}

	sum := sha256.Sum256(password)
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(a.passwordHash)) == 1
}
