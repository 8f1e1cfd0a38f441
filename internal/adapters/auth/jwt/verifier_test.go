package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_IssueAndVerify(t *testing.T) {
	v := NewVerifier("s3cret")

	token, err := v.Issue("user-1", "a@b.c", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), "  "+token+"  ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestVerifier_NumericUserIDAndSubFallback(t *testing.T) {
	v := NewVerifier("s3cret")

	numeric, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"userId": 42,
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), numeric)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)

	sub, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": "user-from-sub",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	claims, err = v.Verify(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "user-from-sub", claims.UserID)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("s3cret")
	ctx := context.Background()

	_, err := v.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	other, err := NewVerifier("other").Issue("user-1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	assert.Error(t, err, "wrong signature")

	expired, err := v.Issue("user-1", "", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	noUser, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"email": "a@b.c",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = v.Verify(ctx, noUser)
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = NewVerifier("").Verify(ctx, "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
