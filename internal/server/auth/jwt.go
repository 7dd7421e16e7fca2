// Package auth implements the signing and verification of access and refresh
// tokens. Access and refresh tokens use independent HMAC secrets so that a
// leaked secret for one kind does not compromise the other.
package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// defaultRefreshDays is used when the configured refresh lifetime cannot
// be parsed.
const defaultRefreshDays = 7

// TokenPayload is the identity embedded in both token kinds.
type TokenPayload struct {
	UserID string
	Email  string
}

// Claims extends the registered JWT claims with the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Codec signs and verifies token pairs.
type Codec struct {
	accessSecret   []byte
	refreshSecret  []byte
	accessLifetime time.Duration
	refreshExpiry  string
}

// NewCodec builds a Codec. refreshExpiry is a human-readable lifetime such
// as "7d"; see RefreshLifetime for the parsing rules.
func NewCodec(accessSecret, refreshSecret []byte, accessLifetime time.Duration, refreshExpiry string) *Codec {
	return &Codec{
		accessSecret:   accessSecret,
		refreshSecret:  refreshSecret,
		accessLifetime: accessLifetime,
		refreshExpiry:  refreshExpiry,
	}
}

func sign(payload TokenPayload, secret []byte, lifetime time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		},
		UserID: payload.UserID,
		Email:  payload.Email,
	})

	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (TokenPayload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return TokenPayload{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return TokenPayload{}, common.ErrInvalidToken
	}

	return TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}

// SignAccess produces a short-lived access token for payload.
func (c *Codec) SignAccess(payload TokenPayload) (string, error) {
	return sign(payload, c.accessSecret, c.accessLifetime)
}

// SignRefresh produces a long-lived refresh token for payload.
func (c *Codec) SignRefresh(payload TokenPayload) (string, error) {
	return sign(payload, c.refreshSecret, c.RefreshLifetime())
}

// VerifyAccess validates an access token and recovers its payload. Any
// failure (bad signature, malformed token, expiry) yields ErrInvalidToken.
func (c *Codec) VerifyAccess(tokenString string) (TokenPayload, error) {
	return verify(tokenString, c.accessSecret)
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (c *Codec) VerifyRefresh(tokenString string) (TokenPayload, error) {
	return verify(tokenString, c.refreshSecret)
}

// RefreshLifetime parses the configured refresh expiry. A value like "7d"
// means seven days; a bare number is taken as days. Anything unparseable
// falls back to 7 days.
func (c *Codec) RefreshLifetime() time.Duration {
	s := strings.TrimSuffix(strings.TrimSpace(c.refreshExpiry), "d")
	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		days = defaultRefreshDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// RefreshExpiry computes the persistence timestamp for a refresh token
// issued now.
func (c *Codec) RefreshExpiry() time.Time {
	return time.Now().Add(c.RefreshLifetime())
}
