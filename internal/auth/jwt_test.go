package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour)
	require.NoError(t, err)

	gotUserID, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUserID)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_SubjectFallback(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "from-sub",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	got, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", got)
}

func TestPeekUserID(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("peeked", []byte("whatever"), time.Hour)
	require.NoError(t, err)

	got, err := PeekUserID(tok)
	require.NoError(t, err)
	assert.Equal(t, "peeked", got)

	_, err = PeekUserID("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u", []byte("k"), time.Hour)
	require.NoError(t, err)

	assert.False(t, IsExpired(tok, time.Now()))
	assert.True(t, IsExpired(tok, time.Now().Add(2*time.Hour)))
	assert.True(t, IsExpired("garbage", time.Now()))
}
