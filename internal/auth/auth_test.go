package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTResolver_RoundTrip(t *testing.T) {
	r := NewJWTResolver("secret")
	token, err := r.Issue("owner-1", time.Hour)
	require.NoError(t, err)

	owner, err := r.ResolveOwner(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "owner-1", owner)
}

func TestJWTResolver_Rejects(t *testing.T) {
	r := NewJWTResolver("secret")

	other, err := NewJWTResolver("other").Issue("owner-1", time.Hour)
	require.NoError(t, err)
	_, err = r.ResolveOwner(context.Background(), other)
	require.ErrorIs(t, err, ErrUnauthorized)

	expired, err := r.Issue("owner-1", -time.Minute)
	require.NoError(t, err)
	_, err = r.ResolveOwner(context.Background(), expired)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = r.ResolveOwner(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = r.ResolveOwner(context.Background(), none)
	require.ErrorIs(t, err, ErrUnauthorized)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = r.ResolveOwner(context.Background(), noSubject)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaticResolver(t *testing.T) {
	owner, err := StaticResolver{OwnerID: "owner-1"}.ResolveOwner(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "owner-1", owner)

	_, err = StaticResolver{}.ResolveOwner(context.Background(), "x")
	require.ErrorIs(t, err, ErrUnauthorized)
}
