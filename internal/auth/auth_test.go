package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminEmailPolicy(t *testing.T) {
	p := NewAdminEmailPolicy("admin@example.com")

	admin := Subject{ID: "u-admin", Email: "admin@example.com"}
	user := Subject{ID: "u1", Email: "user@example.com"}

	for _, action := range []Action{ActionModerateGuestbook, ActionManageBlog, ActionViewDashboard} {
		assert.True(t, p.IsAuthorized(admin, action), action)
		assert.False(t, p.IsAuthorized(user, action), action)
	}

	t.Run("comparison is exact", func(t *testing.T) {
		assert.False(t, p.IsAuthorized(Subject{Email: "Admin@Example.com"}, ActionModerateGuestbook))
		assert.False(t, p.IsAuthorized(Subject{Email: " admin@example.com"}, ActionModerateGuestbook))
	})

	t.Run("role claim alone is not enough", func(t *testing.T) {
		assert.False(t, p.IsAuthorized(Subject{ID: "u2", Email: "x@example.com", Role: "admin"}, ActionModerateGuestbook))
	})

	t.Run("unconfigured admin authorizes nobody", func(t *testing.T) {
		empty := NewAdminEmailPolicy("")
		assert.False(t, empty.IsAuthorized(Subject{}, ActionModerateGuestbook))
		assert.False(t, empty.IsAuthorized(admin, ActionModerateGuestbook))
	})
}

func TestSubject(t *testing.T) {
	assert.False(t, Subject{}.Authenticated())
	assert.True(t, Subject{ID: "u1"}.Authenticated())
	assert.Equal(t, "Someone", Subject{}.DisplayName())
	assert.Equal(t, "Ana", Subject{Name: "Ana"}.DisplayName())
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	in := Subject{ID: "u1", Name: "Ana", Email: "ana@example.com", Image: "https://img/a.png", Role: "user"}

	token, err := issuer.Issue(in)
	require.NoError(t, err)

	out, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(Subject{ID: "u1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokenIssuer("test-secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		expired, err := old.Issue(Subject{ID: "u1"})
		require.NoError(t, err)

		_, err = issuer.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
