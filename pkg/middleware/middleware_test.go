package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/auth"
	md "github.com/Astemirdum/raingear-service/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	issuer := auth.NewIssuer([]byte("secret"), time.Hour)
	token := func(name, role string) string {
		tok, _, err := issuer.Issue(name, role)
		require.NoError(t, err)
		return "Bearer " + tok
	}
	forged, _, err := auth.NewIssuer([]byte("guess"), time.Hour).Issue("2021001", auth.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		header        map[string]string
		admin         bool
		wantCode      int
		wantUser      string
	}{
		{name: "ok", authorization: token("2021001", "STUDENT"), wantCode: http.StatusOK, wantUser: "2021001"},
		{name: "no header", wantCode: http.StatusUnauthorized},
		{name: "not bearer", authorization: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "forged key", authorization: "Bearer " + forged, admin: true, wantCode: http.StatusUnauthorized},
		{
			name:     "identity headers ignored",
			header:   map[string]string{"X-User-Name": "2021001", "X-User-Role": auth.RoleAdmin},
			admin:    true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:          "role comes from token",
			authorization: token("2021001", "STUDENT"),
			header:        map[string]string{"X-User-Role": auth.RoleAdmin},
			admin:         true,
			wantCode:      http.StatusForbidden,
		},
		{name: "admin route allowed", authorization: token("admin", "ADMIN"), admin: true, wantCode: http.StatusOK, wantUser: "admin"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			ok := func(c echo.Context) error {
				name, _ := auth.UserName(c.Request().Context())
				return c.String(http.StatusOK, name)
			}
			mws := []echo.MiddlewareFunc{md.JwtAuthentication(issuer)}
			if tt.admin {
				mws = append(mws, md.RequireAdmin)
			}
			e.GET("/x", ok, mws...)

			r := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
			if tt.authorization != "" {
				r.Header.Set(md.AuthorizationHeader, tt.authorization)
			}
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				require.Equal(t, tt.wantUser, w.Body.String())
			}
		})
	}
}
