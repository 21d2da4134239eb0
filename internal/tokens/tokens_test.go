package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/models"
)

func testUser() *models.User {
	return &models.User{Username: "admin", Name: "المدير", Role: "admin"}
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	raw, err := Generate("test-secret", testUser(), time.Hour)
	require.NoError(t, err)

	tok, err := NewHSVerifier("test-secret").Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims struct {
		Sub  string `json:"sub"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "admin", claims.Sub)
	assert.Equal(t, "المدير", claims.Name)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := Generate("secret-a", testUser(), time.Hour)
	require.NoError(t, err)

	_, err = NewHSVerifier("secret-b").Verify(context.Background(), raw)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	raw, err := Generate("test-secret", testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = NewHSVerifier("test-secret").Verify(context.Background(), raw)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewHSVerifier("test-secret").Verify(context.Background(), "not.a.token")
	assert.Error(t, err)
}
