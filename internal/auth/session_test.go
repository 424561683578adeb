package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec("test-secret")

	value, err := codec.Encode("bilbo")
	require.NoError(t, err)

	username, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "bilbo", username)
}

func TestSessionDoesNotExpire(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	value, err := codec.Encode("bilbo")
	require.NoError(t, err)

	codec.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }
	username, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "bilbo", username)
}

func TestSessionRejectsTampering(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	value, err := codec.Encode("bilbo")
	require.NoError(t, err)

	_, err = NewSessionCodec("other-secret").Decode(value)
	assert.True(t, errors.Is(err, ErrInvalidSession))

	other, err := codec.Encode("smeagol")
	require.NoError(t, err)
	a, b := strings.Split(value, "."), strings.Split(other, ".")
	forged := strings.Join([]string{a[0], b[1], a[2]}, ".")
	_, err = codec.Decode(forged)
	assert.True(t, errors.Is(err, ErrInvalidSession))

	_, err = codec.Decode("garbage")
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestSessionRejectsForeignIssuerAndAlgorithm(t *testing.T) {
	secret := []byte("test-secret")
	codec := NewSessionCodec(string(secret))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "mordor", Subject: "sauron"})
	value, err := foreign.SignedString(secret)
	require.NoError(t, err)
	_, err = codec.Decode(value)
	assert.True(t, errors.Is(err, ErrInvalidSession))

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Issuer: sessionIssuer, Subject: "sauron"})
	value, err = hs512.SignedString(secret)
	require.NoError(t, err)
	_, err = codec.Decode(value)
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestSessionRequiresUsername(t *testing.T) {
	_, err := NewSessionCodec("test-secret").Encode("")
	assert.Error(t, err)
}
