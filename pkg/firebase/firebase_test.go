package firebase

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

func TestIdentityFromToken(t *testing.T) {
	id := IdentityFromToken(&auth.Token{
		UID: "fb-1",
		Claims: map[string]interface{}{
			"name":    "Ana",
			"email":   "ana@example.com",
			"picture": "https://img/ana.png",
		},
	})

	assert.Equal(t, Identity{UID: "fb-1", Name: "Ana", Email: "ana@example.com", Picture: "https://img/ana.png"}, id)
}

func TestIdentityFromToken_MissingClaims(t *testing.T) {
	id := IdentityFromToken(&auth.Token{UID: "fb-2", Claims: map[string]interface{}{"email": 42}})
	assert.Equal(t, Identity{UID: "fb-2"}, id)
}

func TestInitFirebase_MissingCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "")
	assert.Error(t, err)

	_, err = InitFirebase(context.Background(), "/nonexistent/credentials.json")
	assert.ErrorContains(t, err, "not found")
}
