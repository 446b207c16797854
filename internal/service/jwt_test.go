package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 7*24*time.Hour)

	token, err := issuer.Generate("user-1")
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", id)
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 7*24*time.Hour)
	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Generate("user-1")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(6 * 24 * time.Hour) }
	_, err = issuer.Parse(token)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForeignSignatures(t *testing.T) {
	ours := NewTokenIssuer("test-secret", time.Hour)
	theirs := NewTokenIssuer("other-secret", time.Hour)

	token, err := theirs.Generate("user-1")
	require.NoError(t, err)
	_, err = ours.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ours.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ours.Parse(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutUserIDIsInvalid(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate("")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
