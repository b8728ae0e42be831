package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := CreateAccessToken(42, "staff", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := CreateAccessToken(1, "customer", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Expired(t *testing.T) {
	token, err := CreateAccessToken(1, "customer", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken("not-a-jwt", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_EmptySecret(t *testing.T) {
	_, err := CreateAccessToken(1, "staff", "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   1,
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte(""))
	require.NoError(t, err)

	_, err = ParseAccessToken(raw, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
