// Package jwtutil issues and verifies the HS256 bearer tokens handed out at login.
package jwtutil

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
)

type Claims struct {
	UserID   uint   `json:"-"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Option func(*Codec)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// Codec is safe for concurrent use; its fields are read-only after construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration, issuer string, opts ...Option) *Codec {
	c := &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func (c *Codec) GenerateToken(userID uint, username string) (string, error) {
	now := c.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Codec) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		default:
			return nil, ErrInvalidToken
		}
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrMalformedToken
	}
	claims.UserID = uint(id)
	return claims, nil
}
