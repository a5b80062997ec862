package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// CookieClaims carry the access token inside the signed cookie value.
type CookieClaims struct {
	jwt.RegisteredClaims
	AccessToken string `json:"tok"`
}

// CookieCodec signs access tokens into cookie values (HS256) and reads them
// back. The cookie only transports the token; validity is decided by the
// persisted session.
type CookieCodec struct {
	secret []byte
	now    func() time.Time
}

func NewCookieCodec(secret string) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), now: time.Now}
}

// Encode returns a cookie value for token that expires after ttl.
func (c *CookieCodec) Encode(token string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := CookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccessToken: token,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies value and returns the access token it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &CookieClaims{}

	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.AccessToken == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AccessToken, nil
}
