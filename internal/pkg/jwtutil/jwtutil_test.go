package jwtutil

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newTestCodec(clock *fakeClock) *Codec {
	return NewCodec("test-secret", 30*time.Minute, "postboard-test", WithClock(clock.Now))
}

func TestCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	token, err := codec.GenerateToken(42, "alice")
	require.NoError(t, err)

	claims, err := codec.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, claims.ExpiresAt.Time.Equal(clock.t.Add(30*time.Minute)))
}

func TestCodec_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	token, err := codec.GenerateToken(7, "bob")
	require.NoError(t, err)

	clock.t = clock.t.Add(29 * time.Minute)
	_, err = codec.ParseToken(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = codec.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestCodec_Failures(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	codec := newTestCodec(clock)
	other := NewCodec("another-secret", time.Minute, "postboard-test", WithClock(clock.Now))

	valid, err := codec.GenerateToken(1, "alice")
	require.NoError(t, err)
	foreign, err := other.GenerateToken(1, "alice")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrMalformedToken},
		{name: "garbage", token: "not-a-token", want: ErrMalformedToken},
		{name: "non numeric subject", token: badSubject, want: ErrMalformedToken},
		{name: "foreign secret", token: foreign, want: ErrInvalidToken},
		{name: "tampered signature", token: tampered, want: ErrInvalidToken},
		{name: "unexpected algorithm", token: hs512, want: ErrInvalidToken},
		{name: "missing expiry", token: noExpiry, want: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.ParseToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
