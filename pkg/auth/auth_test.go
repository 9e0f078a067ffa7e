package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAuthContext(t *testing.T) {
	ctx := auth.SetAuthContext(context.Background(), "2021001", "admin")

	name, ok := auth.UserName(ctx)
	require.True(t, ok)
	require.Equal(t, "2021001", name)
	require.True(t, auth.IsAdmin(ctx))

	_, ok = auth.UserName(context.Background())
	require.False(t, ok)
	require.False(t, auth.IsAdmin(auth.SetAuthContext(context.Background(), "u", "student")))
}

func TestIssuer(t *testing.T) {
	t.Parallel()
	issuer := auth.NewIssuer([]byte("secret"), time.Hour)

	token, exp, err := issuer.Issue("2021001", "STUDENT")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "2021001", claims.Profile.Username)
	require.Equal(t, "STUDENT", claims.Profile.Role)
	require.Equal(t, "2021001", claims.Subject)

	otherKey, _, err := auth.NewIssuer([]byte("other"), time.Hour).Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)
	expired, _, err := auth.NewIssuer([]byte("secret"), -time.Minute).Issue("2021001", "STUDENT")
	require.NoError(t, err)
	noneClaims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	noneClaims.Profile.Username = "admin"
	noneClaims.Profile.Role = auth.RoleAdmin
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, noneClaims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "other key", token: otherKey},
		{name: "expired", token: expired},
		{name: "unsigned", token: unsigned},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := issuer.Parse(tt.token)
			require.True(t, errors.Is(err, auth.ErrInvalidToken))
		})
	}
}
