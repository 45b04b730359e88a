package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"go.uber.org/zap"
)

func run(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(echo.Context) error { return nil })(c)
	return c, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.Issue(auth.Subject{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: "user"})
	require.NoError(t, err)

	c, err := run(t, JWTAuthMiddleware(tokens), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "u1", SubjectFrom(c).ID)
	assert.Equal(t, "Ana", SubjectFrom(c).Name)

	for _, header := range []string{"", "Token " + token, "Bearer", "Bearer not-a-jwt"} {
		_, err := run(t, JWTAuthMiddleware(tokens), header)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), header)
	}

	other := auth.NewTokenIssuer("different", time.Hour)
	_, err = run(t, JWTAuthMiddleware(other), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestOptionalJWTMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.Issue(auth.Subject{ID: "u1"})
	require.NoError(t, err)

	c, err := run(t, OptionalJWTMiddleware(tokens), "Bearer "+token)
	require.NoError(t, err)
	assert.True(t, SubjectFrom(c).Authenticated())

	c, err = run(t, OptionalJWTMiddleware(tokens), "Bearer garbage")
	require.NoError(t, err)
	assert.False(t, SubjectFrom(c).Authenticated())

	c, err = run(t, OptionalJWTMiddleware(tokens), "")
	require.NoError(t, err)
	assert.False(t, SubjectFrom(c).Authenticated())
}

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad token")
	}
	return &fbauth.Token{UID: "fb-1"}, nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	mw := FirebaseAuthMiddleware(stubVerifier{}, zap.NewNop())

	c, err := run(t, mw, "Bearer good")
	require.NoError(t, err)
	token, ok := FirebaseTokenFrom(c)
	require.True(t, ok)
	assert.Equal(t, "fb-1", token.UID)

	for _, header := range []string{"", "good", "Bearer bad"} {
		_, err := run(t, mw, header)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), header)
	}
}

func TestRequirePolicy(t *testing.T) {
	policy := auth.NewAdminEmailPolicy("admin@example.com")
	mw := RequirePolicy(policy, auth.ActionModerateGuestbook)

	call := func(subject *auth.Subject) error {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if subject != nil {
			c.Set(subjectKey, *subject)
		}
		return mw(func(echo.Context) error { return nil })(c)
	}

	assert.Equal(t, http.StatusUnauthorized, statusOf(t, call(nil)))
	assert.Equal(t, http.StatusForbidden, statusOf(t, call(&auth.Subject{ID: "u1", Email: "ana@example.com"})))
	assert.NoError(t, call(&auth.Subject{ID: "u2", Email: "admin@example.com"}))
}
