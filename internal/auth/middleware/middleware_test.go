package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/grayvisions/grayvisions/internal/rbac"
)

func hash(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("secret")
	tok, err := a.IssueJWT("admin", rbac.RoleAdmin)
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Sub)
	assert.Equal(t, rbac.RoleAdmin, c.Role)
	assert.Equal(t, Issuer, c.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	a := NewAuthService("secret")
	tok, err := a.IssueJWT("admin", rbac.RoleAdmin)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewAuthService("other").Parse(tok)
		assert.ErrorIs(t, err, ErrBadToken)
	})
	t.Run("expired", func(t *testing.T) {
		late := NewAuthService("secret")
		late.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }
		_, err := late.Parse(tok)
		assert.ErrorIs(t, err, ErrBadToken)
	})
	t.Run("none alg", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Sub: "x", Role: "admin"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = a.Parse(raw)
		assert.ErrorIs(t, err, ErrBadToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := a.Parse("not.a.jwt")
		assert.ErrorIs(t, err, ErrBadToken)
	})
}

func TestLoginHandler(t *testing.T) {
	a := NewAuthService("secret")
	creds := Credentials{Enabled: true, User: "admin", PassHash: hash(t, "hunter2")}
	h := LoginHandler(a, creds)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"username":"admin","password":"hunter2"}`, http.StatusOK},
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"wrong user", `{"username":"root","password":"hunter2"}`, http.StatusUnauthorized},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body)))
			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"access_token"`)
			}
		})
	}
}

func TestLoginHandler_Disabled(t *testing.T) {
	a := NewAuthService("secret")
	for _, creds := range []Credentials{
		{Enabled: false, User: "admin", PassHash: hash(t, "pw")},
		{Enabled: true, User: "admin"},
	} {
		rec := httptest.NewRecorder()
		LoginHandler(a, creds)(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"admin","password":"pw"}`)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("secret")
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	good, err := a.IssueJWT("ed", rbac.RoleEditor)
	require.NoError(t, err)
	stranger, err := a.IssueJWT("kid", "student")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"unknown role", "Bearer " + stranger, http.StatusForbidden},
		{"ok", "Bearer " + good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
	assert.Equal(t, "ed", gotSub)
	assert.Equal(t, rbac.RoleEditor, gotRole)
}
